package bootstrap

import (
	"cinebox/internal/pkg/config"
	"cinebox/internal/pkg/ticketcode"

	"go.uber.org/fx"
)

var TicketModule = fx.Module("ticket",
	fx.Provide(
		NewTicketCodec,
	),
)

func NewTicketCodec(cfg config.Config) (*ticketcode.Codec, error) {
	key, err := cfg.Ticket.Key()
	if err != nil {
		return nil, err
	}
	return ticketcode.NewCodec(key)
}
