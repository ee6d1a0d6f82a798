package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cinebox/internal/domain/user"
	"cinebox/internal/handler/api"
	"cinebox/internal/handler/middleware"
	"cinebox/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Catalog     *api.CatalogHandler
	Screening   *api.ScreeningHandler
	Reservation *api.ReservationHandler
	Ticket      *api.TicketHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleStaff)
	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		catalog := apiGroup.Group("")
		catalog.Use(authMiddleware.RequireAuth())
		{
			addRoutes(catalog, []route{
				{Method: http.MethodGet, Path: "/movies", Handler: h.Catalog.ListMovies},
				{Method: http.MethodPost, Path: "/movies", Handler: h.Catalog.CreateMovie, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/rooms", Handler: h.Catalog.ListRooms},
				{Method: http.MethodPost, Path: "/rooms", Handler: h.Catalog.CreateRoom, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/parameters/:id", Handler: h.Catalog.GetParameter, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPut, Path: "/parameters/:id", Handler: h.Catalog.SetParameter, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		screenings := apiGroup.Group("/screenings")
		screenings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(screenings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListScreenings},
				{Method: http.MethodPost, Path: "", Handler: h.Screening.Create, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPut, Path: "/:room/:start", Handler: h.Screening.Update, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:room/:start/publish", Handler: h.Screening.Publish, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodGet, Path: "/:room/:start/seats", Handler: h.Screening.Seats},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodDelete, Path: "", Handler: h.Reservation.DeletePending},
				{Method: http.MethodPost, Path: "/confirm", Handler: h.Reservation.Confirm, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodGet, Path: "/ticket", Handler: h.Ticket.Issue},
			})
		}

		tickets := apiGroup.Group("/tickets")
		tickets.Use(authMiddleware.RequireAuth())
		{
			addRoutes(tickets, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: h.Ticket.Validate, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
