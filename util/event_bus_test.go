package util

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var mu sync.Mutex
	var got []string
	record := func(name string) EventHandler {
		return func(_ context.Context, e Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name+":"+e.Payload.(string))
			return nil
		}
	}

	bus.Subscribe(EventRenewalSucceeded, record("a"))
	bus.Subscribe(EventRenewalSucceeded, record("b"))
	bus.Subscribe(EventRenewalFailed, record("c"))

	bus.Publish(context.Background(), EventRenewalSucceeded, "jdoe")
	bus.Wait()

	assert.ElementsMatch(t, []string{"a:jdoe", "b:jdoe"}, got)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	var mu sync.Mutex
	unsubscribe := bus.Subscribe(EventRenewalFailed, func(context.Context, Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	bus.Publish(context.Background(), EventRenewalFailed, nil)
	bus.Wait()
	unsubscribe()
	bus.Publish(context.Background(), EventRenewalFailed, nil)
	bus.Wait()

	assert.Equal(t, 1, calls)
}

func TestEventBus_HandlerSurvivesCanceledContext(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen error
	bus.Subscribe(EventRenewalSucceeded, func(ctx context.Context, _ Event) error {
		seen = ctx.Err()
		return errors.New("handler failed")
	})

	bus.Publish(ctx, EventRenewalSucceeded, nil)
	bus.Wait()

	assert.NoError(t, seen)
	assert.Len(t, bus.errorChan, 1)
}
