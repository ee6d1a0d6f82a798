package api

import (
	"net/http"

	"cinebox/internal/domain/reservation"
	reqdto "cinebox/internal/handler/dto/request"
	resdto "cinebox/internal/handler/dto/response"
	"cinebox/internal/handler/middleware"
	"cinebox/internal/usecase/commands"
	"cinebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

func actor(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// @Summary Reserve seats
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Seat selection"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	seats, err := req.SeatKeys()
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.reservationCommands.Create(c.Request.Context(), userID, req.RoomID, req.StartTime, seats)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Confirm reservation (payment signal)
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	var req reqdto.ConfirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	key := reservation.NewKey(req.RoomID, req.StartTime, req.CustomerID, req.CreatedAt)
	if err := h.reservationCommands.Confirm(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel own active reservation
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.OwnReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	key := reservation.NewKey(req.RoomID, req.StartTime, userID, req.CreatedAt)
	if err := h.reservationCommands.Cancel(c.Request.Context(), key, userID, role); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Abandon own pending reservation
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [delete]
func (h *ReservationHandler) DeletePending(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.OwnReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	key := reservation.NewKey(req.RoomID, req.StartTime, userID, req.CreatedAt)
	if err := h.reservationCommands.DeletePending(c.Request.Context(), key, userID, role); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List own reservations
// @Tags reservations
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}

	items, err := h.reservationQueries.ListByCustomer(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationListItems(items))
}
