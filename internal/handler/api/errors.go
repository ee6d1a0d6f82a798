package api

import (
	"errors"
	"net/http"

	"cinebox/internal/handler/httperr"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type errMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// One table instead of a switch per handler: every endpoint speaks the same
// reason codes for the same failures.
var errMappings = []errMapping{
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{errs.ErrNotOwner, http.StatusForbidden, "NOT_OWNER", "Reservation belongs to another customer"},

	{errs.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND", "Customer not found"},
	{errs.ErrMovieNotFound, http.StatusNotFound, "MOVIE_NOT_FOUND", "Movie not found"},
	{errs.ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found"},
	{errs.ErrSeatNotFound, http.StatusNotFound, "SEAT_NOT_FOUND", "Requested seat does not exist in this room"},
	{errs.ErrScreeningNotFound, http.StatusNotFound, "SCREENING_NOT_FOUND", "Screening not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Reservation not found"},
	{errs.ErrParameterNotFound, http.StatusNotFound, "PARAMETER_NOT_FOUND", "Parameter not found"},

	{errs.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered"},
	{errs.ErrRoomExists, http.StatusConflict, "ROOM_EXISTS", "A room with this name already exists"},
	{errs.ErrSeatUnavailable, http.StatusConflict, "SEAT_UNAVAILABLE", "One of the requested seats is already held"},
	{errs.ErrScreeningOverlap, http.StatusConflict, "SCREENING_OVERLAP", "Screening overlaps another in the same room"},
	{errs.ErrScreeningExists, http.StatusConflict, "SCREENING_EXISTS", "A screening already exists at this room and time"},
	{errs.ErrScreeningReserved, http.StatusConflict, "SCREENING_RESERVED", "Screening has reservations holding seats"},
	{errs.ErrNotPending, http.StatusConflict, "NOT_PENDING", "Reservation is not pending"},
	{errs.ErrNotActive, http.StatusConflict, "NOT_ACTIVE", "Reservation is not active"},
	{errs.ErrNotPrivate, http.StatusConflict, "NOT_PRIVATE", "Only private screenings can be published"},
	{errs.ErrTicketAlreadyUsed, http.StatusConflict, "TICKET_ALREADY_USED", "Ticket was already redeemed"},
	{errs.ErrTicketCancelled, http.StatusConflict, "TICKET_CANCELLED", "Reservation was cancelled"},

	{errs.ErrNoSeatsRequested, http.StatusBadRequest, "NO_SEATS", "At least one seat is required"},
	{errs.ErrTicketMalformed, http.StatusBadRequest, "TICKET_MALFORMED", "Ticket code is not valid"},

	{errs.ErrScreeningStarted, http.StatusUnprocessableEntity, "SCREENING_STARTED", "Screening has already started"},
	{errs.ErrCancelTooLate, http.StatusUnprocessableEntity, "CANCEL_TOO_LATE", "Too close to the screening start to cancel"},
	{errs.ErrTicketNotStarted, http.StatusUnprocessableEntity, "TICKET_NOT_STARTED", "Attendance window has not opened yet"},
	{errs.ErrTicketAlreadyEnded, http.StatusUnprocessableEntity, "TICKET_ALREADY_ENDED", "Attendance window has closed"},
	{errs.ErrDomainValidation, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Request failed domain validation"},
}

func respondError(c *gin.Context, err error) {
	for _, m := range errMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.code, m.message, overlapDetail(err))
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
}

// overlapDetail surfaces which screening blocked the slot, when known.
func overlapDetail(err error) any {
	var overlap *commands.OverlapError
	if !errors.As(err, &overlap) {
		return nil
	}
	return gin.H{
		"roomId":        overlap.RoomID,
		"existingStart": overlap.ExistingStart,
		"existingMovie": overlap.ExistingMovie,
	}
}

func respondBadRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "BAD_REQUEST", "Invalid request format", nil)
}
