package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener[string](ctx, broker)
	broker.Publish(UpdatedEvent, "reloaded")

	msg := listener.Listen()()
	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "reloaded", event.Payload)
}

func TestListenCmd_NilAfterCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_NilAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()
	ch := broker.Subscribe(ctx)
	broker.Close()

	require.Nil(t, ListenCmd(ctx, ch)())
}
