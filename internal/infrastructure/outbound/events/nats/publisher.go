package nats_events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	ports "noders-content-service/internal/domain/ports/output"

	"github.com/nats-io/nats.go"
)

type Publisher struct {
	nc  *nats.Conn
	log ports.Logger
}

func NewPublisher(url string, log ports.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("noders-content-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	log.Info("Connected to NATS", slog.String("url", url))
	return &Publisher{nc: nc, log: log}, nil
}

// NewPublisherFromConn wraps an already established connection.
func NewPublisherFromConn(nc *nats.Conn, log ports.Logger) *Publisher {
	return &Publisher{nc: nc, log: log}
}

func (p *Publisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set("Content-Type", "application/json")

	if err := p.nc.PublishMsg(msg); err != nil {
		p.log.Error("Failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.log.Debug("Event published", slog.String("subject", subject), slog.Int("bytes", len(data)))
	return nil
}

func (p *Publisher) Close() error {
	if p.nc == nil || p.nc.IsClosed() {
		return nil
	}
	return p.nc.Drain()
}
