package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// EventPublisher broadcasts domain events to interested consumers. A nil
// publisher disables eventing without changing workflow behavior.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

type natsEventPublisher struct {
	conn        *nats.Conn
	subjectBase string
	logger      zerolog.Logger
}

type eventEnvelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

// NewNATSEventPublisher wraps a NATS connection as an EventPublisher.
// Returns nil when the connection is absent so wiring stays optional.
func NewNATSEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	if conn == nil {
		return nil
	}

	base := strings.TrimSuffix(subjectBase, ".")
	if base == "" {
		base = "cohort"
	}

	return &natsEventPublisher{
		conn:        conn,
		subjectBase: base,
		logger:      logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(_ context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(eventEnvelope{
		Event:   event,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	subject := p.subjectBase + "." + event
	if err := p.conn.Publish(subject, body); err != nil {
		return err
	}

	p.logger.Debug().Str("subject", subject).Msg("event published")

	return nil
}
