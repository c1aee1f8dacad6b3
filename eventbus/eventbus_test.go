package eventbus_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	eventbus "github.com/hanpama/graphexec/eventbus"
)

type pingEvent struct{ N int }
type otherEvent struct{ S string }

func TestPublishSubscribe(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var got []pingEvent
	unsub := eventbus.Subscribe(func(ctx context.Context, e pingEvent) {
		got = append(got, e)
	})
	defer unsub()

	eventbus.Publish(context.Background(), pingEvent{N: 1})
	eventbus.Publish(context.Background(), otherEvent{S: "ignored"})
	eventbus.Publish(context.Background(), pingEvent{N: 2})

	require.Equal(t, []pingEvent{{N: 1}, {N: 2}}, got)
}

func TestUnsubscribe(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var count int
	unsub := eventbus.Subscribe(func(ctx context.Context, e pingEvent) { count++ })

	eventbus.Publish(context.Background(), pingEvent{})
	unsub()
	eventbus.Publish(context.Background(), pingEvent{})

	require.Equal(t, 1, count)
}

// Two handlers for the same event type unsubscribe independently.
func TestUnsubscribe_Independent(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var a, b int
	unsubA := eventbus.Subscribe(func(ctx context.Context, e pingEvent) { a++ })
	unsubB := eventbus.Subscribe(func(ctx context.Context, e pingEvent) { b++ })
	defer unsubB()

	eventbus.Publish(context.Background(), pingEvent{})
	unsubA()
	eventbus.Publish(context.Background(), pingEvent{})

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

func TestPublish_NoBus(t *testing.T) {
	eventbus.Use(nil)

	// Must be a no-op, not a panic.
	eventbus.Publish(context.Background(), pingEvent{N: 1})
	unsub := eventbus.Subscribe(func(ctx context.Context, e pingEvent) {})
	unsub()
}

func TestPublish_Concurrent(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var mu sync.Mutex
	count := 0
	unsub := eventbus.Subscribe(func(ctx context.Context, e pingEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eventbus.Publish(context.Background(), pingEvent{})
		}()
	}
	wg.Wait()

	require.Equal(t, 50, count)
}
