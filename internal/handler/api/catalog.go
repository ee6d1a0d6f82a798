package api

import (
	"net/http"
	"strconv"

	reqdto "cinebox/internal/handler/dto/request"
	resdto "cinebox/internal/handler/dto/response"
	"cinebox/internal/handler/middleware"
	"cinebox/internal/usecase/commands"
	"cinebox/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary Add movie
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateMovieRequest true "Movie"
// @Success 201 {object} resdto.MovieResponse
// @Failure 422 {object} httperr.Response
// @Router /movies [post]
func (h *CatalogHandler) CreateMovie(c *gin.Context) {
	var req reqdto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	movie, err := h.catalogCommands.CreateMovie(c.Request.Context(), req.Title, req.RuntimeMin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.MovieResponse{
		ID:         movie.ID,
		Title:      movie.Title,
		RuntimeMin: movie.RuntimeMin,
		CreatedAt:  movie.CreatedAt,
	})
}

// @Summary List movies
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.MovieResponse
// @Router /movies [get]
func (h *CatalogHandler) ListMovies(c *gin.Context) {
	views, err := h.catalogQueries.ListMovies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMovieViews(views))
}

// @Summary Add room with generated seat map
// @Tags catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rooms [post]
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	room, err := h.catalogCommands.CreateRoom(c.Request.Context(), req.Name, req.Rows, req.SeatsPerRow)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		CreatedAt: room.CreatedAt,
	})
}

// @Summary List rooms
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	views, err := h.catalogQueries.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(views))
}

// @Summary Tune a runtime parameter
// @Tags parameters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Parameter ID"
// @Param request body reqdto.SetParameterRequest true "New value"
// @Success 200 {object} resdto.ParameterResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /parameters/{id} [put]
func (h *CatalogHandler) SetParameter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	var req reqdto.SetParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.catalogCommands.SetParameter(c.Request.Context(), id, req.Value); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ParameterResponse{ID: id, Value: req.Value})
}

// @Summary Read a runtime parameter
// @Tags parameters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Parameter ID"
// @Success 200 {object} resdto.ParameterResponse
// @Failure 404 {object} httperr.Response
// @Router /parameters/{id} [get]
func (h *CatalogHandler) GetParameter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	value, err := h.catalogQueries.GetParameter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ParameterResponse{ID: id, Value: value})
}

// @Summary List upcoming screenings
// @Tags screenings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.ScreeningResponse
// @Router /screenings [get]
func (h *CatalogHandler) ListScreenings(c *gin.Context) {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.catalogQueries.ListScreenings(c.Request.Context(), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScreeningViews(views))
}
