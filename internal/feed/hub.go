package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

// SnapshotFunc loads the full reservation listing, newest first.
type SnapshotFunc func(ctx context.Context) ([]reservations.Reservation, error)

// Hub is the reservation feed: on every wake (a Redis publish after any
// write), on every new subscriber, and on a periodic refresh it loads the
// FULL snapshot and fans it out to all attached sessions. Deliveries are
// at-least-once and may repeat an identical snapshot; sessions handle that
// by diffing on pending count.
type Hub struct {
	Load SnapshotFunc

	// RefreshEvery is the fallback poll for missed publishes. 0 = 30s.
	RefreshEvery time.Duration

	mu   sync.Mutex
	subs map[chan []reservations.Reservation]struct{}
	kick chan struct{}
}

func NewHub(load SnapshotFunc) *Hub {
	return &Hub{
		Load: load,
		subs: make(map[chan []reservations.Reservation]struct{}),
		kick: make(chan struct{}, 1),
	}
}

// Attach registers a session and schedules an immediate delivery so the
// new console starts from the current state.
func (h *Hub) Attach() chan []reservations.Reservation {
	ch := make(chan []reservations.Reservation, 4)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	select {
	case h.kick <- struct{}{}:
	default:
	}
	return ch
}

func (h *Hub) Detach(ch chan []reservations.Reservation) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// Run blocks until ctx is cancelled. wake is the change signal (Redis
// pub/sub via redisx.FeedWake in production).
func (h *Hub) Run(ctx context.Context, wake <-chan struct{}) error {
	every := h.RefreshEvery
	if every <= 0 {
		every = 30 * time.Second
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		case <-h.kick:
		case <-t.C:
		}
		h.broadcast(ctx)
	}
}

func (h *Hub) broadcast(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	snap, err := h.Load(loadCtx)
	cancel()
	if err != nil {
		log.Printf("feed: snapshot load: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- snap:
		default:
			// Sesi lambat: lewati, delivery berikutnya (atau refresh tick)
			// membawa snapshot lengkap lagi.
		}
	}
}
