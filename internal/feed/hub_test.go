package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

func waitDelivery(t *testing.T, ch chan []reservations.Reservation) []reservations.Reservation {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("no feed delivery")
		return nil
	}
}

func TestHub_DeliversOnAttachAndWake(t *testing.T) {
	var loads atomic.Int64
	hub := NewHub(func(context.Context) ([]reservations.Reservation, error) {
		loads.Add(1)
		return []reservations.Reservation{{ID: "a", Status: reservations.StatusPending}}, nil
	})
	hub.RefreshEvery = time.Hour // keep the fallback poll out of this test

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wake := make(chan struct{}, 1)
	go func() { _ = hub.Run(ctx, wake) }()

	ch := hub.Attach()
	defer hub.Detach(ch)

	snap := waitDelivery(t, ch)
	require.Len(t, snap, 1, "attach delivers the current snapshot")

	wake <- struct{}{}
	snap = waitDelivery(t, ch)
	assert.Len(t, snap, 1)
	assert.GreaterOrEqual(t, loads.Load(), int64(2), "every wake reloads the full snapshot")
}

func TestHub_FansOutToAllSessions(t *testing.T) {
	hub := NewHub(func(context.Context) ([]reservations.Reservation, error) {
		return []reservations.Reservation{{ID: "a", Status: reservations.StatusPending}}, nil
	})
	hub.RefreshEvery = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wake := make(chan struct{}, 1)
	go func() { _ = hub.Run(ctx, wake) }()

	ch1 := hub.Attach()
	defer hub.Detach(ch1)
	waitDelivery(t, ch1)

	ch2 := hub.Attach()
	defer hub.Detach(ch2)
	waitDelivery(t, ch2)

	wake <- struct{}{}
	waitDelivery(t, ch1)
	// ch2 got the same delivery (plus possibly the attach kick one)
	waitDelivery(t, ch2)
}

func TestHub_DetachedSessionGetsNothing(t *testing.T) {
	hub := NewHub(func(context.Context) ([]reservations.Reservation, error) {
		return nil, nil
	})
	hub.RefreshEvery = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wake := make(chan struct{}, 1)
	go func() { _ = hub.Run(ctx, wake) }()

	ch := hub.Attach()
	waitDelivery(t, ch)
	hub.Detach(ch)

	wake <- struct{}{}
	select {
	case <-ch:
		t.Fatal("delivery after detach")
	case <-time.After(150 * time.Millisecond):
	}
}
