package mailer

import (
	"fmt"
	"io"
	"time"

	"cinebox/internal/pkg/config"
	"cinebox/internal/pkg/errs"
	"cinebox/internal/pkg/ticketcode"

	"gopkg.in/gomail.v2"
)

// TicketMail carries everything the confirmation email needs.
type TicketMail struct {
	To         string
	MovieTitle string
	RoomName   string
	StartTime  time.Time
	Seats      []string
	PriceCents int64
	Code       string
}

type Mailer interface {
	SendTicket(mail TicketMail) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

const ticketBodyFmt = `<h2>Your ticket is confirmed</h2>
<p><b>%s</b></p>
<p>Room %s &middot; %s</p>
<p>Seats: %s</p>
<p>Total: %.2f</p>
<p>Show the attached QR code at the entrance, or present this code:</p>
<pre>%s</pre>`

func (m *SMTPMailer) SendTicket(mail TicketMail) error {
	png, err := ticketcode.QRPNG(mail.Code, 256)
	if err != nil {
		return errs.Wrap(err, "failed to render ticket QR")
	}

	seats := ""
	for i, s := range mail.Seats {
		if i > 0 {
			seats += ", "
		}
		seats += s
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", fmt.Sprintf("Your ticket: %s", mail.MovieTitle))
	msg.SetBody("text/html", fmt.Sprintf(ticketBodyFmt,
		mail.MovieTitle, mail.RoomName, mail.StartTime.Format("Mon 2 Jan 2006 15:04"),
		seats, float64(mail.PriceCents)/100, mail.Code))
	msg.Attach("ticket.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errs.Wrap(err, "failed to send ticket email")
	}
	return nil
}
