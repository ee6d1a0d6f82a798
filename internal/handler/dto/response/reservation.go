package response

import (
	"time"

	"cinebox/internal/domain/reservation"
	"cinebox/internal/usecase/commands"
	"cinebox/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	RoomID     uuid.UUID `json:"roomId"`
	StartTime  time.Time `json:"startTime"`
	CustomerID uuid.UUID `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     string    `json:"status"`
	Seats      []string  `json:"seats"`
	PriceCents int64     `json:"priceCents"`
}

type ReservationListResponse struct {
	RoomID      uuid.UUID  `json:"roomId"`
	RoomName    string     `json:"roomName"`
	StartTime   time.Time  `json:"startTime"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      string     `json:"status"`
	PriceCents  int64      `json:"priceCents"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	MovieTitle  string     `json:"movieTitle"`
	Seats       []string   `json:"seats"`
}

type SeatResponse struct {
	Row        string `json:"row"`
	Number     int    `json:"number"`
	Tariff     string `json:"tariff"`
	PriceCents int64  `json:"priceCents"`
	Available  bool   `json:"available"`
}

type SeatMapResponse struct {
	RoomID    uuid.UUID       `json:"roomId"`
	StartTime time.Time       `json:"startTime"`
	Seats     []*SeatResponse `json:"seats"`
}

type TicketResponse struct {
	Code  string `json:"code"`
	QRPNG []byte `json:"qrPng"` // base64 in JSON
}

type AttendanceResponse struct {
	MovieTitle   string    `json:"movieTitle"`
	RoomName     string    `json:"roomName"`
	StartTime    time.Time `json:"startTime"`
	CustomerName string    `json:"customerName"`
	Seats        []string  `json:"seats"`
}

func FromReservation(res *reservation.Reservation) *ReservationResponse {
	key := res.Key()
	seats := make([]string, 0, len(res.Seats()))
	for _, s := range res.Seats() {
		seats = append(seats, s.Label())
	}
	return &ReservationResponse{
		RoomID:     key.RoomID,
		StartTime:  key.StartTime,
		CustomerID: key.CustomerID,
		CreatedAt:  key.CreatedAt,
		Status:     res.Status().String(),
		Seats:      seats,
		PriceCents: res.PriceCents(),
	}
}

func FromReservationListItems(items []*queries.ReservationListItem) []*ReservationListResponse {
	out := make([]*ReservationListResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &ReservationListResponse{
			RoomID:      item.RoomID,
			RoomName:    item.RoomName,
			StartTime:   item.StartTime,
			CreatedAt:   item.CreatedAt,
			Status:      item.Status,
			PriceCents:  item.PriceCents,
			CancelledAt: item.CancelledAt,
			MovieTitle:  item.MovieTitle,
			Seats:       item.Seats,
		})
	}
	return out
}

func FromSeatMapView(view *queries.SeatMapView) *SeatMapResponse {
	seats := make([]*SeatResponse, 0, len(view.Seats))
	for _, s := range view.Seats {
		seats = append(seats, &SeatResponse{
			Row:        s.Row,
			Number:     s.Number,
			Tariff:     s.Tariff,
			PriceCents: s.PriceCents,
			Available:  !s.Held,
		})
	}
	return &SeatMapResponse{
		RoomID:    view.RoomID,
		StartTime: view.StartTime,
		Seats:     seats,
	}
}

func FromAttendance(att *commands.Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		MovieTitle:   att.MovieTitle,
		RoomName:     att.RoomName,
		StartTime:    att.StartTime,
		CustomerName: att.CustomerName,
		Seats:        att.Seats,
	}
}
