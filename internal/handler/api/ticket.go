package api

import (
	"net/http"

	"cinebox/internal/domain/reservation"
	reqdto "cinebox/internal/handler/dto/request"
	resdto "cinebox/internal/handler/dto/response"
	"cinebox/internal/handler/middleware"
	"cinebox/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketCommands commands.TicketCommands
}

func NewTicketHandler(ticketCommands commands.TicketCommands) *TicketHandler {
	return &TicketHandler{ticketCommands: ticketCommands}
}

// @Summary Issue ticket for own active reservation
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param room_id query string true "Room ID"
// @Param start_time query string true "Screening start (RFC3339)"
// @Param created_at query string true "Reservation creation time (RFC3339)"
// @Success 200 {object} resdto.TicketResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/ticket [get]
func (h *TicketHandler) Issue(c *gin.Context) {
	userID, ok := actor(c)
	if !ok {
		return
	}
	role, _ := middleware.GetUserRole(c)

	var q reqdto.TicketQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	key := reservation.NewKey(q.RoomID, q.StartTime, userID, q.CreatedAt)
	ticket, err := h.ticketCommands.Issue(c.Request.Context(), key, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.TicketResponse{
		Code:  ticket.Code,
		QRPNG: ticket.QRPNG,
	})
}

// @Summary Redeem scanned ticket code
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateTicketRequest true "Scanned code"
// @Success 200 {object} resdto.AttendanceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /tickets/validate [post]
func (h *TicketHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	att, err := h.ticketCommands.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAttendance(att))
}
