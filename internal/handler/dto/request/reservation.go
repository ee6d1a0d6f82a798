package request

import (
	"time"

	"cinebox/internal/domain/seat"

	"github.com/google/uuid"
)

type SeatRef struct {
	Row    string `json:"row" binding:"required"`
	Number int    `json:"number" binding:"required,gt=0"`
}

type CreateReservationRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Seats     []SeatRef `json:"seats" binding:"required,min=1,dive"`
}

func (r CreateReservationRequest) SeatKeys() ([]seat.Key, error) {
	keys := make([]seat.Key, 0, len(r.Seats))
	for _, s := range r.Seats {
		k, err := seat.NewKey(s.Row, s.Number)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// ConfirmReservationRequest is the payment collaborator's signal and names
// the reservation in full, customer included.
type ConfirmReservationRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	CreatedAt  time.Time `json:"created_at" binding:"required"`
}

// OwnReservationRequest addresses one of the caller's own reservations; the
// customer half of the key comes from the access token.
type OwnReservationRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	CreatedAt time.Time `json:"created_at" binding:"required"`
}

// TicketQuery addresses the caller's reservation via query string on the GET
// ticket endpoint.
type TicketQuery struct {
	RoomID    uuid.UUID `form:"room_id" binding:"required"`
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedAt time.Time `form:"created_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ValidateTicketRequest struct {
	Code string `json:"code" binding:"required"`
}
