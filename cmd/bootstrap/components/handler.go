package components

import (
	"cinebox/internal/handler"
	"cinebox/internal/handler/api"
	"cinebox/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewScreeningHandler,
		api.NewReservationHandler,
		api.NewTicketHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	catalog *api.CatalogHandler,
	screening *api.ScreeningHandler,
	reservation *api.ReservationHandler,
	ticket *api.TicketHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Catalog:     catalog,
		Screening:   screening,
		Reservation: reservation,
		Ticket:      ticket,
	}
}
