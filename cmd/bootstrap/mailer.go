package bootstrap

import (
	"cinebox/internal/infra/mailer"
	"cinebox/internal/pkg/config"

	"go.uber.org/fx"
)

var MailerModule = fx.Module("mailer",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(mailer.Mailer)),
		),
	),
)

func NewMailer(cfg config.Config) *mailer.SMTPMailer {
	return mailer.NewSMTPMailer(cfg.SMTP)
}
