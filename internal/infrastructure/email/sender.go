// Package email provides SMTP delivery for transactional mail.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/medistore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sender delivers a single HTML email
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string, to []string) error
}

// SMTPSender implements Sender over plain SMTP with auth
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPSender creates an SMTPSender from configuration
func NewSMTPSender(cfg config.EmailConfig, logger *zap.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("email host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("email from address is required")
	}

	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}, nil
}

// Send delivers one HTML email to the given recipients
func (s *SMTPSender) Send(ctx context.Context, subject, htmlBody string, to []string) error {
	if len(to) == 0 {
		return errors.New("at least one recipient is required")
	}

	e := email.NewEmail()
	e.From = s.from
	e.To = to
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug("email sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(to)),
	)
	return nil
}

// NoopSender discards mail. It is used when email delivery is disabled.
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a NoopSender
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

// Send logs the message instead of delivering it
func (s *NoopSender) Send(ctx context.Context, subject, htmlBody string, to []string) error {
	s.logger.Info("email delivery disabled, dropping message",
		zap.String("subject", subject),
		zap.Strings("to", to),
	)
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*NoopSender)(nil)
)
