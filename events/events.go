package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeProvaCreated    EventType = "prova_created"
	EventTypeProvaResolved   EventType = "prova_resolved"
	EventTypeProvaReopened   EventType = "prova_reopened"
	EventTypePointsAwarded   EventType = "points_awarded"
	EventTypeStreakMilestone EventType = "streak_milestone"
	EventTypeNivelUp         EventType = "nivel_up"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ProvaCreatedEvent represents a newly created prova open for wagers
type ProvaCreatedEvent struct {
	ProvaID         uuid.UUID `json:"prova_id"`
	Tipo            string    `json:"tipo"`
	Titulo          string    `json:"titulo"`
	IsApostaBinaria bool      `json:"is_aposta_binaria"`
	DataProva       time.Time `json:"data_prova"`
}

func (e ProvaCreatedEvent) Type() EventType {
	return EventTypeProvaCreated
}

// ProvaResolvedEvent represents a prova closed with a declared outcome
type ProvaResolvedEvent struct {
	ProvaID         uuid.UUID  `json:"prova_id"`
	Tipo            string     `json:"tipo"`
	Titulo          string     `json:"titulo"`
	VencedorID      *uuid.UUID `json:"vencedor_id,omitempty"`
	RespostaCorreta *string    `json:"resposta_correta,omitempty"`
	TotalApostas    int        `json:"total_apostas"`
	TotalAcertos    int        `json:"total_acertos"`
}

func (e ProvaResolvedEvent) Type() EventType {
	return EventTypeProvaResolved
}

// ProvaReopenedEvent represents a resolved prova being reopened, with
// all awarded points and XP reversed.
type ProvaReopenedEvent struct {
	ProvaID uuid.UUID `json:"prova_id"`
}

func (e ProvaReopenedEvent) Type() EventType {
	return EventTypeProvaReopened
}

// PointsAwardedEvent represents points granted to one user by a resolution
type PointsAwardedEvent struct {
	UserID  uuid.UUID `json:"user_id"`
	ProvaID uuid.UUID `json:"prova_id"`
	Pontos  int       `json:"pontos"`
	XP      int       `json:"xp"`
}

func (e PointsAwardedEvent) Type() EventType {
	return EventTypePointsAwarded
}

// StreakMilestoneEvent fires when a user's current streak crosses the
// celebration boundary.
type StreakMilestoneEvent struct {
	UserID      uuid.UUID `json:"user_id"`
	StreakAtual int       `json:"streak_atual"`
}

func (e StreakMilestoneEvent) Type() EventType {
	return EventTypeStreakMilestone
}

// NivelUpEvent fires when a resolution pushes a user past a level threshold
type NivelUpEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	NivelAntes int       `json:"nivel_antes"`
	NivelNovo  int       `json:"nivel_novo"`
}

func (e NivelUpEvent) Type() EventType {
	return EventTypeNivelUp
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking the emitter
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the underlying bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Events are processed independently of the transaction lifecycle,
	// so a possibly-expired transaction context must not cancel them.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
