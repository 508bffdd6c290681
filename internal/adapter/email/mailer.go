package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const confirmationSubject = "Your booking is confirmed"

var confirmationBody = template.Must(template.New("confirmation").Parse(
	`Your booking {{.ID}} is confirmed.

Check-in:  {{.CheckIn}}
Check-out: {{.CheckOut}}
Total:     {{printf "%.2f" .TotalCost}}
`))

// dialer is the part of *gomail.Dialer the mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends booking confirmations over SMTP.
type Mailer struct {
	dialer dialer
	from   string
	logger *logger.Logger
}

func NewMailer(host string, port int, username, password, from string, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: log.Named("Mailer"),
	}
}

func (m *Mailer) SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := m.confirmation(to, booking)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send booking confirmation", zap.String("booking_id", booking.ID), zap.Error(err))
		return fmt.Errorf("send booking confirmation: %w", err)
	}
	m.logger.Info("Booking confirmation sent", zap.String("booking_id", booking.ID))
	return nil
}

func (m *Mailer) confirmation(to string, booking *domain.Booking) (*gomail.Message, error) {
	var body bytes.Buffer
	err := confirmationBody.Execute(&body, struct {
		ID, CheckIn, CheckOut string
		TotalCost             float64
	}{
		ID:        booking.ID,
		CheckIn:   booking.CheckInDate.Format(domain.HumanReadableLayout),
		CheckOut:  booking.CheckOutDate.Format(domain.HumanReadableLayout),
		TotalCost: booking.TotalCost,
	})
	if err != nil {
		return nil, fmt.Errorf("render booking confirmation: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", confirmationSubject)
	msg.SetBody("text/plain", body.String())
	return msg, nil
}
