package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

func sampleReservation(status reservations.Status) reservations.Reservation {
	return reservations.Reservation{
		ID:        "r1",
		FirstName: "Ada",
		Email:     "ada@example.com",
		Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "19:30",
		PartySize: 4,
		Area:      "terrace",
		Status:    status,
	}
}

func TestRenderDecision_Confirmed(t *testing.T) {
	subject, body, err := RenderDecision(sampleReservation(reservations.StatusConfirmed))
	require.NoError(t, err)
	assert.Contains(t, subject, "confirmed")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "2026-09-12")
	assert.Contains(t, body, "19:30")
	assert.Contains(t, body, "4")
	assert.Contains(t, body, "terrace")
}

func TestRenderDecision_RejectedCarriesReason(t *testing.T) {
	rec := sampleReservation(reservations.StatusRejected)
	rec.RejectionReason = "Fully booked that evening"

	_, body, err := RenderDecision(rec)
	require.NoError(t, err)
	assert.Contains(t, body, "Fully booked that evening")
	assert.Contains(t, body, "2026-09-12")
}

func TestRenderDecision_PendingHasNoTemplate(t *testing.T) {
	_, _, err := RenderDecision(sampleReservation(reservations.StatusPending))
	assert.Error(t, err)
}

func TestRenderReceived(t *testing.T) {
	subject, body, err := RenderReceived(sampleReservation(reservations.StatusPending))
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "19:30")
}
