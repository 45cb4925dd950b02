// Package notify sends booking confirmation notices.
package notify

import (
	"context"
	"fmt"
	"strings"

	"travel_booking/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// SMTPConfig addresses the outgoing mail server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers confirmations over SMTP
type Mailer struct {
	cfg  SMTPConfig
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewMailer builds a Mailer. The SMTP client is created per delivery.
func NewMailer(cfg SMTPConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	c, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return c.DialAndSendWithContext(ctx, msg)
}

// BookingsConfirmed mails the customer a summary of the new bookings
func (m *Mailer) BookingsConfirmed(ctx context.Context, to domain.Principal, bookings []domain.Booking) error {
	msg, err := ConfirmationMessage(m.cfg.From, to, bookings)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to.Email, err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  to.UserID,
		"bookings": len(bookings),
	}).Info("Booking confirmation sent")
	return nil
}

// ConfirmationMessage composes the confirmation e-mail
func ConfirmationMessage(from string, to domain.Principal, bookings []domain.Booking) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat("CVC Viagens", from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.AddToFormat(to.Name, to.Email); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject("Suas reservas foram confirmadas")
	msg.SetBodyString(mail.TypeTextPlain, ConfirmationBody(to, bookings))
	return msg, nil
}

// ConfirmationBody is the plain-text summary of the bookings
func ConfirmationBody(to domain.Principal, bookings []domain.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s,\n\nPagamento processado com sucesso! Suas reservas foram confirmadas:\n\n", to.Name)
	var total float64
	for _, bk := range bookings {
		fmt.Fprintf(&b, "- %s: %d viajante(s), %s a %s, R$ %.2f\n",
			bk.PackageTitle, bk.Travelers,
			bk.CheckIn.Format("02/01/2006"), bk.CheckOut.Format("02/01/2006"),
			bk.TotalPrice)
		total += bk.TotalPrice
	}
	fmt.Fprintf(&b, "\nTotal: R$ %.2f\n", domain.RoundCents(total))
	return b.String()
}

// LogNotifier records confirmations in the log when no SMTP server is configured
type LogNotifier struct{}

// BookingsConfirmed logs the confirmation
func (LogNotifier) BookingsConfirmed(_ context.Context, to domain.Principal, bookings []domain.Booking) error {
	logrus.WithFields(logrus.Fields{
		"user_id":  to.UserID,
		"email":    to.Email,
		"bookings": len(bookings),
	}).Info("Booking confirmation (mail disabled)")
	return nil
}
