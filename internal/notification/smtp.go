package notification

import (
	"context"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/config"
)

// SMTPSink sends notifications through an SMTP relay.
type SMTPSink struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSMTPSink builds a sink from mail settings.
func NewSMTPSink(cfg config.MailConfig, logger *zap.Logger) *SMTPSink {
	return &SMTPSink{cfg: cfg, logger: logger}
}

// Notify implements Sink.
func (s *SMTPSink) Notify(ctx context.Context, address string, kind Kind, data Data) bool {
	log := s.logger.With(
		zap.String("kind", string(kind)),
		zap.Int64("complaint_id", data.ComplaintID),
		zap.String("to", address),
	)
	if strings.TrimSpace(address) == "" {
		log.Warn("notification skipped: empty address")
		return false
	}
	msg, err := Render(kind, data)
	if err != nil {
		log.Error("render notification", zap.Error(err))
		return false
	}
	if err := s.send(ctx, address, msg); err != nil {
		log.Error("send notification", zap.Error(err))
		return false
	}
	log.Info("notification sent")
	return true
}

func (s *SMTPSink) send(ctx context.Context, address string, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return err
	}
	if err := m.To(address); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.Body)

	policy := mail.TLSOpportunistic
	if s.cfg.UseTLS {
		policy = mail.TLSMandatory
	}
	client, err := mail.NewClient(s.cfg.Server,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(policy),
		mail.WithTimeout(s.cfg.Timeout()),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}
