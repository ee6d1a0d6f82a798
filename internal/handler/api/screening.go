package api

import (
	"net/http"
	"time"

	reqdto "cinebox/internal/handler/dto/request"
	resdto "cinebox/internal/handler/dto/response"
	"cinebox/internal/handler/middleware"
	"cinebox/internal/usecase/commands"
	"cinebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScreeningHandler struct {
	screeningCommands commands.ScreeningCommands
	seatMapQueries    queries.SeatMapQueries
}

func NewScreeningHandler(screeningCommands commands.ScreeningCommands, seatMapQueries queries.SeatMapQueries) *ScreeningHandler {
	return &ScreeningHandler{
		screeningCommands: screeningCommands,
		seatMapQueries:    seatMapQueries,
	}
}

// screeningKey parses the :room/:start path pair that addresses a screening.
func screeningKey(c *gin.Context) (uuid.UUID, time.Time, bool) {
	roomID, err := uuid.Parse(c.Param("room"))
	if err != nil {
		respondBadRequest(c, err)
		return uuid.Nil, time.Time{}, false
	}
	start, err := time.Parse(time.RFC3339, c.Param("start"))
	if err != nil {
		respondBadRequest(c, err)
		return uuid.Nil, time.Time{}, false
	}
	return roomID, start, true
}

// @Summary Schedule screening
// @Tags screenings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateScreeningRequest true "Screening"
// @Success 201 {object} resdto.ScreeningResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /screenings [post]
func (h *ScreeningHandler) Create(c *gin.Context) {
	var req reqdto.CreateScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	scr, err := h.screeningCommands.Create(c.Request.Context(), req.RoomID, req.StartTime, req.MovieID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.ScreeningResponse{
		RoomID:     scr.RoomID(),
		StartTime:  scr.StartTime(),
		MovieID:    scr.MovieID(),
		Visibility: string(scr.Visibility()),
	})
}

// @Summary Reschedule screening
// @Tags screenings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param room path string true "Room ID"
// @Param start path string true "Start time (RFC3339)"
// @Param request body reqdto.UpdateScreeningRequest true "New slot"
// @Success 200 {object} resdto.ScreeningResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /screenings/{room}/{start} [put]
func (h *ScreeningHandler) Update(c *gin.Context) {
	oldRoomID, oldStart, ok := screeningKey(c)
	if !ok {
		return
	}

	var req reqdto.UpdateScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	scr, err := h.screeningCommands.Update(c.Request.Context(), oldRoomID, oldStart, req.RoomID, req.StartTime, req.MovieID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ScreeningResponse{
		RoomID:     scr.RoomID(),
		StartTime:  scr.StartTime(),
		MovieID:    scr.MovieID(),
		Visibility: string(scr.Visibility()),
	})
}

// @Summary Publish screening
// @Tags screenings
// @Security BearerAuth
// @Param room path string true "Room ID"
// @Param start path string true "Start time (RFC3339)"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /screenings/{room}/{start}/publish [post]
func (h *ScreeningHandler) Publish(c *gin.Context) {
	roomID, start, ok := screeningKey(c)
	if !ok {
		return
	}

	if err := h.screeningCommands.Publish(c.Request.Context(), roomID, start); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Seat map with availability
// @Tags screenings
// @Security BearerAuth
// @Produce json
// @Param room path string true "Room ID"
// @Param start path string true "Start time (RFC3339)"
// @Success 200 {object} resdto.SeatMapResponse
// @Failure 404 {object} httperr.Response
// @Router /screenings/{room}/{start}/seats [get]
func (h *ScreeningHandler) Seats(c *gin.Context) {
	roomID, start, ok := screeningKey(c)
	if !ok {
		return
	}

	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := h.seatMapQueries.GetSeatMap(c.Request.Context(), roomID, start, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSeatMapView(view))
}
