package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	ev := reservations.Envelope{
		EventID:       "ev-1",
		EventType:     reservations.EventReservationCreated,
		EventVersion:  1,
		OccurredAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Producer:      "resto-api",
		CorrelationID: "r1",
		Payload: MustMarshal(reservations.ReservationCreatedPayload{
			ReservationID: "r1",
			FirstName:     "Ada",
			Email:         "ada@example.com",
			Date:          "2026-09-12",
			TimeSlot:      "19:30",
			PartySize:     4,
			Area:          "terrace",
		}),
	}
	wire := MustMarshal(ev)

	var got reservations.Envelope
	require.NoError(t, UnmarshalEnvelope(wire, &got))
	assert.Equal(t, reservations.EventReservationCreated, got.EventType)
	assert.Equal(t, "r1", got.CorrelationID)

	p, err := UnwrapPayload[reservations.ReservationCreatedPayload](got.Payload)
	require.NoError(t, err)
	assert.Equal(t, "r1", p.ReservationID)
	assert.Equal(t, "19:30", p.TimeSlot)
	assert.Equal(t, 4, p.PartySize)
}

func TestUnwrapPayloadBadJSON(t *testing.T) {
	_, err := UnwrapPayload[reservations.ReservationCreatedPayload]([]byte(`{"party_size":"four"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode payload")
}
