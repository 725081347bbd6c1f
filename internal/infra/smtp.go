package infra

import (
	"errors"
	"fmt"
	"net/smtp"

	"lotepos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer envía correos de texto plano al supervisor (resumen de arqueo).
// Implementa service.Mailer.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	to       string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		to:       cfg.SupervisorEmail,
	}
}

// Configured indica si hay host SMTP y destinatario; sin eso no se envía nada.
func (m *Mailer) Configured() bool { return m.host != "" && m.to != "" }

func (m *Mailer) Send(asunto, cuerpo string) error {
	if !m.Configured() {
		return errors.New("mailer: SMTP sin configurar")
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{m.to}
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
