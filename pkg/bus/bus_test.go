package bus_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/rolepanel/pkg/bus"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func TestNilBus(t *testing.T) {
	var b *bus.Bus

	require.ErrorIs(t, b.Publish(context.Background(), "x", 1), bus.ErrNilBus)
	require.ErrorIs(t, b.EnsureStream("S", "x"), bus.ErrNilBus)
	require.ErrorIs(t, b.Ping(), bus.ErrNilBus)

	_, err := b.Subscribe(context.Background(), "x", "d", func(context.Context, []byte) error { return nil })
	require.ErrorIs(t, err, bus.ErrNilBus)

	b.Close()
}

func TestNewUnreachable(t *testing.T) {
	_, err := bus.New("nats://127.0.0.1:1", nats.Timeout(time.Second), nats.MaxReconnects(0))
	require.Error(t, err)
}
