package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{}, 1)

	bus.Subscribe(EventTypeDepositLogged, func(ctx context.Context, e Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		done <- struct{}{}
	})

	bus.Emit(context.Background(), DepositLoggedEvent{DiscordID: 1, SandAmount: 100})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 1)
	assert.Equal(t, EventTypeDepositLogged, received[0].Type())
}

func TestTransactionalBus_FlushDeliversPending(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	done := make(chan Event, 2)
	bus.Subscribe(EventTypeRateChange, func(ctx context.Context, e Event) {
		done <- e
	})

	txBus.Publish(RateChangeEvent{OldRate: 50, NewRate: 75})
	txBus.Publish(RateChangeEvent{OldRate: 75, NewRate: 60})

	// Nothing is emitted before flush
	select {
	case <-done:
		t.Fatal("event emitted before flush")
	case <-time.After(50 * time.Millisecond):
	}

	assert.NoError(t, txBus.Flush(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("pending event was not flushed")
		}
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypeStatsReset, func(ctx context.Context, e Event) {
		called <- struct{}{}
	})

	txBus.Publish(StatsResetEvent{AdminID: 42})
	txBus.Discard()
	assert.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-called:
		t.Fatal("discarded event was emitted")
	case <-time.After(50 * time.Millisecond):
	}
}
