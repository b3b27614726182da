package triage

import "github.com/villaflora/go-resto-console/internal/reservations"

// Diff partitions one full feed snapshot into pending vs completed and
// detects a new arrival relative to the previous delivery.
//
// Arrival detection is count-based: it fires iff len(pending) grew since
// the last delivery. It is deliberately blind to a swap inside one delivery
// (one pending confirmed elsewhere + one new arrival, net count unchanged);
// identity tracking is not worth the state it would drag in here.
//
// newest is the first pending record in delivery order. The snapshot comes
// from the store ordered newest-first (repo.Snapshot); Diff trusts that
// order and does not re-sort.
//
// Pure function: the caller keeps prevPendingCount and feeds back
// len(pending) on the next delivery.
func Diff(prevPendingCount int, snapshot []reservations.Reservation) (pending, completed []reservations.Reservation, newest *reservations.Reservation) {
	for _, rec := range snapshot {
		if rec.Status.Pending() {
			pending = append(pending, rec)
		} else {
			completed = append(completed, rec)
		}
	}
	if len(pending) > prevPendingCount {
		top := pending[0]
		newest = &top
	}
	return pending, completed, newest
}
