package triage

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

type alertRecorder struct {
	mu        sync.Mutex
	shown     []Alert
	dismissed int
}

func (r *alertRecorder) onShow(a Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, a)
}

func (r *alertRecorder) onDismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dismissed++
}

func (r *alertRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shown), r.dismissed
}

func TestAlert_ChimeIsThreeAscendingTones(t *testing.T) {
	tones := Chime()
	require.Len(t, tones, 3)
	assert.Less(t, tones[0].FreqHz, tones[1].FreqHz)
	assert.Less(t, tones[1].FreqHz, tones[2].FreqHz)

	var total time.Duration
	for _, tone := range tones {
		total += tone.Duration + tone.Gap
	}
	assert.InDelta(t, 0.6, total.Seconds(), 0.15, "chime should be roughly 0.6s")
}

func TestAlert_AutoDismissAfterDwell(t *testing.T) {
	rec := &alertRecorder{}
	c := NewAlertController(40*time.Millisecond, rec.onShow, rec.onDismiss)

	c.Trigger(resv("a", reservations.StatusPending, time.Now()))
	_, showing := c.Showing()
	require.True(t, showing)

	time.Sleep(120 * time.Millisecond)

	_, showing = c.Showing()
	assert.False(t, showing)
	shown, dismissed := rec.counts()
	assert.Equal(t, 1, shown)
	assert.Equal(t, 1, dismissed)
}

func TestAlert_SecondArrivalReplacesAndRestartsTimer(t *testing.T) {
	rec := &alertRecorder{}
	c := NewAlertController(120*time.Millisecond, rec.onShow, rec.onDismiss)

	c.Trigger(resv("first", reservations.StatusPending, time.Now()))
	time.Sleep(80 * time.Millisecond)
	c.Trigger(resv("second", reservations.StatusPending, time.Now()))

	// 150ms after the first trigger its timer would have fired; the slot
	// must still show the second reservation.
	time.Sleep(70 * time.Millisecond)
	cur, showing := c.Showing()
	require.True(t, showing, "replacement must restart the dwell timer")
	assert.Equal(t, "second", cur.ID)

	shown, dismissed := rec.counts()
	assert.Equal(t, 2, shown, "no queue: both arrivals shown through the single slot")
	assert.Equal(t, 0, dismissed)

	// and the second alert still auto-dismisses on its own schedule
	time.Sleep(120 * time.Millisecond)
	_, showing = c.Showing()
	assert.False(t, showing)
	_, dismissed = rec.counts()
	assert.Equal(t, 1, dismissed)
}

func TestAlert_ManualDismissCancelsTimer(t *testing.T) {
	rec := &alertRecorder{}
	c := NewAlertController(60*time.Millisecond, rec.onShow, rec.onDismiss)

	c.Trigger(resv("a", reservations.StatusPending, time.Now()))
	c.Dismiss()

	_, dismissed := rec.counts()
	require.Equal(t, 1, dismissed)

	// a later alert must not be killed by the first alert's stale timer
	time.Sleep(30 * time.Millisecond)
	c.Trigger(resv("b", reservations.StatusPending, time.Now()))
	time.Sleep(45 * time.Millisecond) // past the first timer's would-be deadline

	cur, showing := c.Showing()
	require.True(t, showing)
	assert.Equal(t, "b", cur.ID)
}

func TestAlert_DismissWhileIdleIsNoop(t *testing.T) {
	rec := &alertRecorder{}
	c := NewAlertController(time.Second, rec.onShow, rec.onDismiss)

	c.Dismiss()
	shown, dismissed := rec.counts()
	assert.Zero(t, shown)
	assert.Zero(t, dismissed, "no dismissal event when nothing is showing")
}
