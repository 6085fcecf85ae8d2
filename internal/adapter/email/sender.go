package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/AzizovM-doder/Rent-A-Room/internal/app/config"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpSender struct {
	cfg config.SMTPConfig
	log logger.Logger
	d   *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) (Sender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}
	return &smtpSender{
		cfg: cfg,
		log: log,
		d:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.log.Warnf("email sending to %s cancelled by context: %v", to, ctx.Err())
		return fmt.Errorf("email sending cancelled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.log.Errorf("failed to send email to %s: %v", to, err)
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	s.log.Infof("email sent to %s, subject: %s", to, subject)
	return nil
}
