package noop_events

import (
	"context"
	"log/slog"

	ports "noders-content-service/internal/domain/ports/output"
)

// Publisher drops every event. Used when no broker is configured.
type Publisher struct {
	log ports.Logger
}

func NewPublisher(log ports.Logger) *Publisher {
	return &Publisher{log: log}
}

func (p *Publisher) Publish(_ context.Context, subject string, _ any) error {
	p.log.Debug("Event dropped, no broker configured", slog.String("subject", subject))
	return nil
}

func (p *Publisher) Close() error { return nil }
