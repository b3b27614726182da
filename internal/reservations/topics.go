package reservations

const (
	TopicReservationCreated = "reservation.created"
	TopicReservationTriaged = "reservation.triaged"
)

// Partition key = reservation_id, supaya semua event satu reservasi
// maintain urutan.
func PartitionKey(reservationID string) []byte { return []byte(reservationID) }
