package queries

import (
	"time"

	"github.com/google/uuid"
)

type SeatView struct {
	Row        string
	Number     int
	Tariff     string
	PriceCents int64
	Held       bool
}

type SeatMapView struct {
	RoomID    uuid.UUID
	StartTime time.Time
	Seats     []*SeatView
}

type ReservationListItem struct {
	RoomID      uuid.UUID
	RoomName    string
	StartTime   time.Time
	CustomerID  uuid.UUID
	CreatedAt   time.Time
	Status      string
	PriceCents  int64
	CancelledAt *time.Time
	MovieTitle  string
	Seats       []string
}

type ScreeningView struct {
	RoomID     uuid.UUID
	RoomName   string
	StartTime  time.Time
	MovieID    uuid.UUID
	MovieTitle string
	RuntimeMin int
	Visibility string
}

type MovieView struct {
	ID         uuid.UUID
	Title      string
	RuntimeMin int
	CreatedAt  time.Time
}

type RoomView struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type UserView struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  string
}
