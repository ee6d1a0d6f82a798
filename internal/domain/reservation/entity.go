package reservation

import (
	"errors"
	"time"

	"cinebox/internal/domain/seat"

	"github.com/google/uuid"
)

var (
	ErrNoSeats       = errors.New("reservation requires at least one seat")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNotPending    = errors.New("reservation is not pending")
	ErrNotActive     = errors.New("reservation is not active")
	ErrCancelTooLate = errors.New("too close to screening start to cancel")
	ErrAlreadyUsed   = errors.New("reservation already attended")
	ErrCancelled     = errors.New("reservation is cancelled")
	ErrNotStarted    = errors.New("attendance window has not opened")
	ErrAlreadyEnded  = errors.New("attendance window has closed")
)

const (
	// CancelWindow is how far ahead of the screening an active reservation
	// can still be cancelled. Fixed by product decision, unlike the runtime
	// tunable cleaning buffer.
	CancelWindow = 2 * time.Hour

	// AttendanceLead is how early before the screening a ticket scans as
	// valid.
	AttendanceLead = 15 * time.Minute
)

// Key is the reservation's natural identity: one customer's claim on one
// screening, disambiguated by creation time at whole-second precision.
type Key struct {
	RoomID     uuid.UUID
	StartTime  time.Time
	CustomerID uuid.UUID
	CreatedAt  time.Time
}

func NewKey(roomID uuid.UUID, startTime time.Time, customerID uuid.UUID, createdAt time.Time) Key {
	return Key{
		RoomID:     roomID,
		StartTime:  startTime,
		CustomerID: customerID,
		CreatedAt:  createdAt.Truncate(time.Second),
	}
}

type Reservation struct {
	key         Key
	status      Status
	seats       []seat.Key
	priceCents  int64
	cancelledAt *time.Time
}

// NewPending builds the reservation a seat lock transaction inserts. The
// price is the plain sum of the seats' tariffs, computed by the caller from
// the room's seat map.
func NewPending(key Key, seats []seat.Key, priceCents int64) (*Reservation, error) {
	if len(seats) == 0 {
		return nil, ErrNoSeats
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}

	held := make([]seat.Key, len(seats))
	copy(held, seats)

	return &Reservation{
		key:        key,
		status:     StatusPending,
		seats:      held,
		priceCents: priceCents,
	}, nil
}

func Reconstruct(key Key, status Status, seats []seat.Key, priceCents int64, cancelledAt *time.Time) *Reservation {
	return &Reservation{
		key:         key,
		status:      status,
		seats:       seats,
		priceCents:  priceCents,
		cancelledAt: cancelledAt,
	}
}

func (r *Reservation) Key() Key                { return r.key }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) PriceCents() int64       { return r.priceCents }
func (r *Reservation) CancelledAt() *time.Time { return r.cancelledAt }

func (r *Reservation) Seats() []seat.Key {
	out := make([]seat.Key, len(r.seats))
	copy(out, r.seats)
	return out
}

// Confirm flips a pending reservation active on the payment collaborator's
// success signal. Seats do not move.
func (r *Reservation) Confirm() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusActive
	return nil
}

// Cancel is customer-initiated and only allowed while the screening is more
// than CancelWindow away. The row survives; the caller must release the seat
// assignments in the same transaction.
func (r *Reservation) Cancel(now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if !now.Before(r.key.StartTime.Add(-CancelWindow)) {
		return ErrCancelTooLate
	}
	r.status = StatusCancelled
	at := now
	r.cancelledAt = &at
	return nil
}

// Redeem validates a venue scan: attendance window first, then state. The
// runtime bounds the window's end at the screening's finish.
func (r *Reservation) Redeem(now time.Time, runtimeMin int) error {
	start := r.key.StartTime
	if now.Before(start.Add(-AttendanceLead)) {
		return ErrNotStarted
	}
	if now.After(start.Add(time.Duration(runtimeMin) * time.Minute)) {
		return ErrAlreadyEnded
	}

	switch r.status {
	case StatusAttended:
		return ErrAlreadyUsed
	case StatusCancelled:
		return ErrCancelled
	case StatusActive:
		r.status = StatusAttended
		return nil
	default:
		return ErrNotActive
	}
}

// MarkNoShow is owned by the maintenance sweep once the screening has ended.
func (r *Reservation) MarkNoShow() error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusNoShow
	return nil
}

// ExpiredAt reports whether a pending reservation has outlived the hold
// timeout and should be reaped.
func (r *Reservation) ExpiredAt(now time.Time, holdMinutes int) bool {
	if r.status != StatusPending {
		return false
	}
	return r.key.CreatedAt.Add(time.Duration(holdMinutes) * time.Minute).Before(now)
}
