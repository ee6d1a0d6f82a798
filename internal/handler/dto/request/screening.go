package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateScreeningRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	MovieID   uuid.UUID `json:"movie_id" binding:"required"`
}

// UpdateScreeningRequest carries the new slot; the old one is addressed by
// the path.
type UpdateScreeningRequest struct {
	RoomID    uuid.UUID `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	MovieID   uuid.UUID `json:"movie_id" binding:"required"`
}
