package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/observability"
)

// LogSink renders and logs notifications without delivering them. It is used
// when no SMTP credentials are configured and always reports delivered=false.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink builds a LogSink.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify implements Sink.
func (s *LogSink) Notify(_ context.Context, address string, kind Kind, data Data) bool {
	msg, err := Render(kind, data)
	if err != nil {
		s.logger.Error("render notification", zap.String("kind", string(kind)), zap.Error(err))
		return false
	}
	s.logger.Info("notification not delivered: mail transport not configured",
		zap.String("kind", string(kind)),
		zap.Int64("complaint_id", data.ComplaintID),
		zap.String("to", address),
		zap.String("subject", msg.Subject))
	return false
}

type instrumented struct {
	next    Sink
	metrics *observability.Metrics
}

// Instrument counts every attempt made through next.
func Instrument(next Sink, metrics *observability.Metrics) Sink {
	return &instrumented{next: next, metrics: metrics}
}

func (s *instrumented) Notify(ctx context.Context, address string, kind Kind, data Data) bool {
	delivered := s.next.Notify(ctx, address, kind, data)
	s.metrics.RecordNotification(string(kind), delivered)
	return delivered
}

// NewSink picks SMTP when credentials exist, otherwise logging only.
func NewSink(cfg config.MailConfig, logger *zap.Logger, metrics *observability.Metrics) Sink {
	if cfg.Configured() {
		return Instrument(NewSMTPSink(cfg, logger), metrics)
	}
	logger.Warn("mail transport not configured; notifications will only be logged")
	return Instrument(NewLogSink(logger), metrics)
}
