package reservations

import (
	"encoding/json"
	"time"
)

const (
	EventReservationCreated = "ReservationCreated"
	EventReservationTriaged = "ReservationTriaged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "resto-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // reservation_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type ReservationCreatedPayload struct {
	ReservationID string `json:"reservation_id"`
	FirstName     string `json:"first_name"`
	Email         string `json:"email"`
	Date          string `json:"date"` // "YYYY-MM-DD"
	TimeSlot      string `json:"time"`
	PartySize     int    `json:"party_size"`
	Area          string `json:"area"`
}

type ReservationTriagedPayload struct {
	ReservationID string `json:"reservation_id"`
	NewStatus     Status `json:"new_status"` // CONFIRMED | REJECTED
	Reason        string `json:"reason,omitempty"`
	Actor         string `json:"actor"`    // operator yang memutuskan
	Notified      bool   `json:"notified"` // apakah email outcome terkirim
}
