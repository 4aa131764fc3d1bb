package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesAllHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(EventResponseAdded, func(_ context.Context, event Event) error {
		calls = append(calls, "first:"+event.TicketID)
		return errors.New("handler failure")
	})
	dispatcher.Subscribe(EventResponseAdded, func(_ context.Context, event Event) error {
		calls = append(calls, "second:"+event.TicketID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventResponseAdded, TicketID: "t1"})
	require.NoError(t, err)

	// A failing handler never blocks the rest.
	assert.Equal(t, []string{"first:t1", "second:t1"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventStatusChanged}))
}

func TestHandlersAreTypeScoped(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventStatusChanged, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventResponseAdded}))
	assert.False(t, called)
}
