package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bolao/events"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// natsConn is the slice of nats.Conn the publisher needs
type natsConn interface {
	Publish(subject string, data []byte) error
}

// Envelope wraps every published event with routing metadata
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// Publisher forwards domain events from the in-process bus to NATS so
// other services (notification fan-out, frontends) can react.
type Publisher struct {
	conn natsConn
}

// Connect dials NATS and returns a publisher on the connection
func Connect(url string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("bolao"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Error("NATS disconnected with error")
			} else {
				log.Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{conn: nc}, nil
}

// NewPublisher creates a publisher on an existing connection
func NewPublisher(conn natsConn) *Publisher {
	return &Publisher{conn: conn}
}

// SubjectFor maps an event type to its NATS subject
func SubjectFor(eventType events.EventType) string {
	switch eventType {
	case events.EventTypeProvaCreated:
		return "bolao.prova.created"
	case events.EventTypeProvaResolved:
		return "bolao.prova.resolved"
	case events.EventTypeProvaReopened:
		return "bolao.prova.reopened"
	case events.EventTypePointsAwarded:
		return "bolao.pontos.awarded"
	case events.EventTypeStreakMilestone:
		return "bolao.streak.milestone"
	case events.EventTypeNivelUp:
		return "bolao.nivel.up"
	}
	return "bolao.eventos." + string(eventType)
}

// Register subscribes the publisher to every domain event on the bus
func (p *Publisher) Register(bus *events.Bus) {
	handler := func(ctx context.Context, event events.Event) {
		if err := p.publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Failed to publish event to NATS")
		}
	}

	for _, t := range []events.EventType{
		events.EventTypeProvaCreated,
		events.EventTypeProvaResolved,
		events.EventTypeProvaReopened,
		events.EventTypePointsAwarded,
		events.EventTypeStreakMilestone,
		events.EventTypeNivelUp,
	} {
		bus.Subscribe(t, handler)
	}
}

func (p *Publisher) publish(event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := Envelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     time.Now().UTC(),
		SourceService: "bolao",
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := SubjectFor(event.Type())
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"subject":   subject,
		"eventType": event.Type(),
	}).Debug("Published event to NATS")

	return nil
}
