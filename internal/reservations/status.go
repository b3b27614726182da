package reservations

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
)

// Triage hanya bergerak maju: PENDING -> CONFIRMED | REJECTED. Terminal
// states tidak pernah dibuka lagi.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusRejected: true},
	StatusConfirmed: {},
	StatusRejected:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Pending reports whether a reservation still needs staff triage.
func (s Status) Pending() bool { return s == StatusPending }
