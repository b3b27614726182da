package triage

import (
	"sync"
	"time"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

// DefaultDwell is how long an alert stays on screen before it dismisses
// itself.
const DefaultDwell = 8 * time.Second

// Tone describes one note of the alert chime. The console renders it with
// whatever audio backend it has; an exponential gain decay per note is part
// of the sound.
type Tone struct {
	FreqHz   float64       `json:"freq_hz"`
	Duration time.Duration `json:"duration"`
	Gap      time.Duration `json:"gap"`   // pause before the next note
	Decay    float64       `json:"decay"` // target gain at note end (exp ramp from 1.0)
}

// Chime is the arrival cue: three ascending notes (C5 E5 G5), ~0.6s total.
func Chime() []Tone {
	return []Tone{
		{FreqHz: 523.25, Duration: 180 * time.Millisecond, Gap: 30 * time.Millisecond, Decay: 0.01},
		{FreqHz: 659.25, Duration: 180 * time.Millisecond, Gap: 30 * time.Millisecond, Decay: 0.01},
		{FreqHz: 783.99, Duration: 180 * time.Millisecond, Gap: 0, Decay: 0.01},
	}
}

// Alert is what a session shows the operator when a new request arrives.
type Alert struct {
	Reservation reservations.Reservation `json:"reservation"`
	Chime       []Tone                   `json:"chime"`
}

// AlertController owns the single alert slot of one operator session:
// Idle -> Showing -> Idle. There is no queue; a second arrival while
// Showing replaces the displayed reservation and restarts the dwell timer.
// Nothing is persisted: tear the session down and the alert is gone.
type AlertController struct {
	dwell     time.Duration
	onShow    func(Alert)
	onDismiss func()

	mu      sync.Mutex
	showing bool
	current reservations.Reservation
	timer   *time.Timer
	gen     uint64 // invalidates timers from earlier alerts
}

// NewAlertController wires the two callbacks a session uses to push alert
// state to its client. dwell <= 0 means DefaultDwell.
func NewAlertController(dwell time.Duration, onShow func(Alert), onDismiss func()) *AlertController {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	if onShow == nil {
		onShow = func(Alert) {}
	}
	if onDismiss == nil {
		onDismiss = func() {}
	}
	return &AlertController{dwell: dwell, onShow: onShow, onDismiss: onDismiss}
}

// Trigger enters Showing for the given reservation. Called once per arrival
// the differ reports. While already Showing it replaces the displayed
// reservation; the previous dwell timer is cancelled so it cannot fire into
// the new alert's window.
func (c *AlertController) Trigger(rec reservations.Reservation) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.showing = true
	c.current = rec
	c.timer = time.AfterFunc(c.dwell, func() { c.autoDismiss(gen) })
	c.mu.Unlock()

	c.onShow(Alert{Reservation: rec, Chime: Chime()})
}

// Dismiss is the operator closing (or viewing) the alert. Safe to call in
// any state.
func (c *AlertController) Dismiss() {
	if c.clear() {
		c.onDismiss()
	}
}

// Stop tears the controller down without notifying the client. For session
// shutdown.
func (c *AlertController) Stop() {
	c.clear()
}

// Showing returns the displayed reservation, if any.
func (c *AlertController) Showing() (reservations.Reservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.showing
}

func (c *AlertController) autoDismiss(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.showing {
		// a newer alert owns the slot now
		c.mu.Unlock()
		return
	}
	c.showing = false
	c.current = reservations.Reservation{}
	c.timer = nil
	c.mu.Unlock()

	c.onDismiss()
}

func (c *AlertController) clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	was := c.showing
	c.showing = false
	c.current = reservations.Reservation{}
	return was
}
