package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeDepositLogged       EventType = "deposit_logged"
	EventTypeExpeditionCompleted EventType = "expedition_completed"
	EventTypeTreasuryChange      EventType = "treasury_change"
	EventTypeRateChange          EventType = "rate_change"
	EventTypeStatsReset          EventType = "stats_reset"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DepositLoggedEvent represents a harvest deposit that was credited
type DepositLoggedEvent struct {
	DiscordID    int64
	Username     string
	SandAmount   int64
	NewMelange   int64
	TotalSand    int64
	TotalMelange int64
}

func (e DepositLoggedEvent) Type() EventType {
	return EventTypeDepositLogged
}

// ExpeditionCompletedEvent represents a recorded expedition split
type ExpeditionCompletedEvent struct {
	ExpeditionID     int64
	HarvesterID      int64
	TotalSand        int64
	GuildSand        int64
	ParticipantCount int
}

func (e ExpeditionCompletedEvent) Type() EventType {
	return EventTypeExpeditionCompleted
}

// TreasuryChangeEvent represents a treasury deposit or withdrawal
type TreasuryChangeEvent struct {
	TreasuryID int64
	GuildName  string
	SandAmount int64
	NewTotal   int64
	AdminID    int64
}

func (e TreasuryChangeEvent) Type() EventType {
	return EventTypeTreasuryChange
}

// RateChangeEvent represents a conversion-rate update
type RateChangeEvent struct {
	OldRate int64
	NewRate int64
	AdminID int64
}

func (e RateChangeEvent) Type() EventType {
	return EventTypeRateChange
}

// StatsResetEvent represents a full reset of user harvest totals
type StatsResetEvent struct {
	AdminID      int64
	UsersCleared int64
}

func (e StatsResetEvent) Type() EventType {
	return EventTypeStatsReset
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

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
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

	// Call handlers asynchronously to avoid blocking
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

// A transactional event bus for holding pending events coupled to the Unit of Work.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Events outlive the transaction, so don't inherit its context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
