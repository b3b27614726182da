package feed

import (
	"time"

	"github.com/villaflora/go-resto-console/internal/reservations"
	"github.com/villaflora/go-resto-console/internal/triage"
)

// OperatorSession is the server-side state of one open console: the
// previous pending count for the differ and the single alert slot. One
// goroutine per session calls Apply for each feed delivery, so there is
// one logical thread of control and no locking on the count.
//
// The count (and so alert history) lives only as long as the session: a
// reconnect starts from zero and may re-alert on requests that are still
// pending. Accepted trade-off, not a bug.
type OperatorSession struct {
	prevPending int
	Alerts      *triage.AlertController

	onLists func(pending, completed []reservations.Reservation)
}

// NewOperatorSession wires the three outbound callbacks of a console
// connection: list updates, alert shown, alert dismissed.
func NewOperatorSession(
	dwell time.Duration,
	onLists func(pending, completed []reservations.Reservation),
	onShow func(triage.Alert),
	onDismiss func(),
) *OperatorSession {
	if onLists == nil {
		onLists = func(_, _ []reservations.Reservation) {}
	}
	return &OperatorSession{
		Alerts:  triage.NewAlertController(dwell, onShow, onDismiss),
		onLists: onLists,
	}
}

// Apply handles one feed delivery: partition, push the two lists, and
// raise the alert on a detected arrival.
func (s *OperatorSession) Apply(snapshot []reservations.Reservation) {
	pending, completed, newest := triage.Diff(s.prevPending, snapshot)
	s.prevPending = len(pending)

	s.onLists(pending, completed)
	if newest != nil {
		s.Alerts.Trigger(*newest)
	}
}

// Close releases the alert slot (cancels any dwell timer).
func (s *OperatorSession) Close() { s.Alerts.Stop() }
