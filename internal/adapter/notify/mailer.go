package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"fleet-toll-gateway/config"
	"fleet-toll-gateway/internal/core/domain"

	"github.com/rs/zerolog"
)

// SendFunc matches smtp.SendMail; injected for testing.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer implements ports.Notifier over plain SMTP.
type Mailer struct {
	cfg  config.SMTPConfig
	send SendFunc
	log  zerolog.Logger
}

// NewMailer creates an SMTP-backed notifier. A nil send falls back to
// smtp.SendMail.
func NewMailer(cfg config.SMTPConfig, send SendFunc, log zerolog.Logger) *Mailer {
	if send == nil {
		send = smtp.SendMail
	}
	return &Mailer{cfg: cfg, send: send, log: log}
}

// PaymentConfirmation emails a toll payment receipt.
func (m *Mailer) PaymentConfirmation(ctx context.Context, email string, txn *domain.TollTransaction, stationName string) error {
	subject := "Confirmation de paiement de péage"
	var body strings.Builder
	fmt.Fprintf(&body, "Votre paiement de péage a été confirmé.\r\n\r\n")
	if stationName != "" {
		fmt.Fprintf(&body, "Station : %s\r\n", stationName)
	}
	fmt.Fprintf(&body, "Montant : %s %s\r\n", txn.Amount.String(), txn.Currency)
	fmt.Fprintf(&body, "Référence : %s\r\n", txn.ID.String())
	fmt.Fprintf(&body, "Date : %s\r\n", txn.CreatedAt.Format("02/01/2006 15:04"))

	return m.deliver(ctx, email, subject, body.String())
}

// MaintenanceReminder emails an insurance / technical-control expiry notice.
func (m *Mailer) MaintenanceReminder(ctx context.Context, email string, v *domain.Vehicle) error {
	subject := fmt.Sprintf("Rappel d'échéance pour votre véhicule %s", v.RegistrationNumber)
	var body strings.Builder
	fmt.Fprintf(&body, "Bonjour,\r\n\r\nDes échéances approchent pour votre véhicule %s %s (%s) :\r\n",
		v.Brand, v.Model, v.RegistrationNumber)

	now := time.Now()
	if v.InsuranceExpiringWithin(now, 30*24*time.Hour) {
		fmt.Fprintf(&body, "- Assurance : expire le %s\r\n", v.InsuranceExpiry.Format("02/01/2006"))
	}
	if v.TechnicalCheckDueWithin(now, 30*24*time.Hour) {
		fmt.Fprintf(&body, "- Contrôle technique : prévu le %s\r\n", v.NextTechnicalCheck.Format("02/01/2006"))
	}
	fmt.Fprintf(&body, "\r\nPensez à renouveler vos documents à temps.\r\n")

	return m.deliver(ctx, email, subject, body.String())
}

// deliver sends one message, honoring ctx cancellation around the blocking
// SMTP call.
func (m *Mailer) deliver(ctx context.Context, to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.send(m.cfg.Addr(), auth, m.cfg.From, []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		m.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
		return nil
	}
}
