package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"hotelbooking/internal/config"
)

var ErrNotConfigured = errors.New("smtp not configured")

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders HTML templates and delivers them over SMTP. smtp.SendMail
// upgrades the connection with STARTTLS whenever the server offers it.
type Mailer struct {
	cfg         config.SMTPConfig
	frontendURL string
	logger      log.Logger
	send        sendFunc
}

func New(cfg config.SMTPConfig, frontendURL string, logger log.Logger) *Mailer {
	return &Mailer{
		cfg:         cfg,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      log.With(logger, "component", "mailer"),
		send:        smtp.SendMail,
	}
}

type Message struct {
	To      string
	Subject string
	HTML    string
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.cfg.Enabled() {
		level.Warn(m.logger).Log("msg", "email not configured, skipping send", "to", msg.To, "subject", msg.Subject)
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.User
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, from, []string{msg.To}, buildMIME(m.cfg.FromName, from, msg)); err != nil {
		level.Error(m.logger).Log("msg", "send email failed", "to", msg.To, "err", err)
		return fmt.Errorf("send email: %w", err)
	}

	level.Info(m.logger).Log("msg", "email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func buildMIME(fromName, from string, msg Message) []byte {
	var b bytes.Buffer
	if fromName != "" {
		fmt.Fprintf(&b, "From: %s <%s>\r\n", fromName, from)
	} else {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return b.Bytes()
}

func (m *Mailer) SendWelcome(ctx context.Context, to, fullName string) error {
	body, err := render(welcomeTmpl, map[string]any{
		"Name":        fullName,
		"FrontendURL": m.frontendURL,
	})
	if err != nil {
		return err
	}
	return m.Send(ctx, Message{To: to, Subject: "Welcome to Hotel Management System!", HTML: body})
}

// ResetLink is the frontend URL a user follows to set a new password.
func (m *Mailer) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, fullName, token string, expiresInMinutes int) error {
	body, err := render(resetTmpl, map[string]any{
		"Name":      fullName,
		"Link":      m.ResetLink(token),
		"ExpiresIn": expiresInMinutes,
	})
	if err != nil {
		return err
	}
	return m.Send(ctx, Message{To: to, Subject: "Reset Your Password - Hotel Management System", HTML: body})
}

type BookingDetails struct {
	BookingID  int64
	GuestName  string
	HotelName  string
	RoomNumber string
	CheckIn    string
	CheckOut   string
	Nights     int
	TotalPrice float64
}

func (m *Mailer) SendBookingConfirmed(ctx context.Context, to string, d BookingDetails) error {
	body, err := render(bookingConfirmedTmpl, d)
	if err != nil {
		return err
	}
	return m.Send(ctx, Message{To: to, Subject: fmt.Sprintf("Booking #%d confirmed", d.BookingID), HTML: body})
}

func (m *Mailer) SendBookingCancelled(ctx context.Context, to string, d BookingDetails) error {
	body, err := render(bookingCancelledTmpl, d)
	if err != nil {
		return err
	}
	return m.Send(ctx, Message{To: to, Subject: fmt.Sprintf("Booking #%d cancelled", d.BookingID), HTML: body})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
