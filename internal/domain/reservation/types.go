package reservation

type Status string

const (
	// StatusPending holds seats until payment confirms or the hold expires.
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	// Terminal states. Cancelled and no-show reservations keep their row but
	// never their seat assignments.
	StatusCancelled Status = "cancelled"
	StatusAttended  Status = "attended"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCancelled, StatusAttended, StatusNoShow:
		return true
	default:
		return false
	}
}

// HoldsSeats reports whether seat assignments may exist for this status.
func (s Status) HoldsSeats() bool {
	return s == StatusPending || s == StatusActive
}
