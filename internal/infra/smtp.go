package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Epaval/factura-con-api-facdin/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Enviar sends a plain-text email, attaching the PDF at adjuntoPDF when set.
func (m *Mailer) Enviar(para, asunto, cuerpo, adjuntoPDF string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{para}
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	if adjuntoPDF != "" {
		if _, err := e.AttachFile(adjuntoPDF); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
