package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers. Handlers
// branch on these with errors.Is and translate them into machine-readable
// reason codes, never on message text.
var (
	// Catalog errors
	ErrMovieNotFound  = errors.New("movie not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomExists     = errors.New("room already exists")
	ErrSeatNotFound   = errors.New("seat not found in room")
	ErrTariffNotFound = errors.New("seat tariff not found")

	// Screening errors
	ErrScreeningNotFound = errors.New("screening not found")
	ErrScreeningOverlap  = errors.New("screening overlaps another in the same room")
	ErrScreeningExists   = errors.New("screening already exists at this room and time")
	ErrScreeningReserved = errors.New("screening has reservations holding seats")
	ErrNotPrivate        = errors.New("only private screenings can be published")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatUnavailable     = errors.New("seat already held for this screening")
	ErrScreeningStarted    = errors.New("screening has already started")
	ErrNoSeatsRequested    = errors.New("no seats requested")
	ErrNotPending          = errors.New("reservation is not pending")
	ErrNotActive           = errors.New("reservation is not active")
	ErrCancelTooLate       = errors.New("too close to screening start to cancel")
	ErrNotOwner            = errors.New("reservation belongs to another customer")

	// Ticket errors
	ErrTicketMalformed    = errors.New("ticket code is malformed")
	ErrTicketNotStarted   = errors.New("attendance window has not opened")
	ErrTicketAlreadyEnded = errors.New("attendance window has closed")
	ErrTicketAlreadyUsed  = errors.New("ticket already redeemed")
	ErrTicketCancelled    = errors.New("reservation was cancelled")

	// Account errors
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Parameter errors
	ErrParameterNotFound = errors.New("parameter not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
