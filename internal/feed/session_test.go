package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villaflora/go-resto-console/internal/reservations"
	"github.com/villaflora/go-resto-console/internal/triage"
)

type sessionRecorder struct {
	pending   [][]string
	completed [][]string
	alerts    []string
	dismissed int
}

func ids(recs []reservations.Reservation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func newRecordedSession(t *testing.T) (*OperatorSession, *sessionRecorder) {
	t.Helper()
	rec := &sessionRecorder{}
	s := NewOperatorSession(time.Minute,
		func(pending, completed []reservations.Reservation) {
			rec.pending = append(rec.pending, ids(pending))
			rec.completed = append(rec.completed, ids(completed))
		},
		func(a triage.Alert) { rec.alerts = append(rec.alerts, a.Reservation.ID) },
		func() { rec.dismissed++ },
	)
	return s, rec
}

func pendingResv(id string, created time.Time) reservations.Reservation {
	return reservations.Reservation{ID: id, Status: reservations.StatusPending, CreatedAt: created}
}

// Feed scenario: one pending request arrives, then a second one. Each
// delivery is a full snapshot, newest first.
func TestOperatorSession_ArrivalSequence(t *testing.T) {
	s, rec := newRecordedSession(t)
	defer s.Close()

	t1 := time.Now().Add(-time.Minute)
	t2 := time.Now()

	s.Apply([]reservations.Reservation{pendingResv("1", t1)})
	require.Equal(t, []string{"1"}, rec.alerts)
	assert.Equal(t, []string{"1"}, rec.pending[0])

	s.Apply([]reservations.Reservation{pendingResv("2", t2), pendingResv("1", t1)})
	require.Equal(t, []string{"1", "2"}, rec.alerts, "second arrival alerts for the newest item")
	assert.Equal(t, []string{"2", "1"}, rec.pending[1])
}

func TestOperatorSession_RedeliveryStaysQuiet(t *testing.T) {
	s, rec := newRecordedSession(t)
	defer s.Close()

	snap := []reservations.Reservation{pendingResv("1", time.Now())}
	s.Apply(snap)
	s.Apply(snap) // reconnect-style redelivery of the identical snapshot

	assert.Equal(t, []string{"1"}, rec.alerts, "identical redelivery must not re-alert")
	assert.Len(t, rec.pending, 2, "lists still refresh on every delivery")
}

func TestOperatorSession_TriageElsewhereMovesListsWithoutAlert(t *testing.T) {
	s, rec := newRecordedSession(t)
	defer s.Close()

	t1 := time.Now().Add(-time.Minute)
	t2 := time.Now()
	s.Apply([]reservations.Reservation{pendingResv("2", t2), pendingResv("1", t1)})
	require.Len(t, rec.alerts, 1)

	confirmed := reservations.Reservation{ID: "1", Status: reservations.StatusConfirmed, CreatedAt: t1}
	s.Apply([]reservations.Reservation{pendingResv("2", t2), confirmed})

	assert.Len(t, rec.alerts, 1, "pending count shrank; no alert")
	assert.Equal(t, []string{"2"}, rec.pending[1])
	assert.Equal(t, []string{"1"}, rec.completed[1])
}
