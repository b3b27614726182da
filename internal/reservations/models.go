package reservations

import "time"

type Reservation struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            time.Time `json:"date"`       // tanggal reservasi (date only)
	TimeSlot        string    `json:"time"`       // "HH:MM", local restaurant time
	PartySize       int       `json:"party_size"` // > 0
	Notes           string    `json:"notes,omitempty"`
	Area            string    `json:"area"` // e.g. "terrace", "dining-room"
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"` // set iff REJECTED
	CreatedAt       time.Time `json:"created_at"`
}

// CreateInput is what the public booking form submits. The store assigns
// id, status (PENDING) and created_at.
type CreateInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	TimeSlot  string `json:"time"` // "HH:MM"
	PartySize int    `json:"party_size"`
	Notes     string `json:"notes"`
	Area      string `json:"area"`
}
