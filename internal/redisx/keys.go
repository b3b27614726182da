package redisx

import "time"

const (
	// Pub/sub channel feed reservasi. Payload = reservation_id yang berubah,
	// tapi konsol tidak memakai payload-nya: setiap publish berarti "reload
	// snapshot lengkap".
	ChannelReservations = "reservations.changed"

	// Cache status reservasi: resv_status:{id} -> {"status": "..."}
	KeyReservationStatus = "resv_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Sesi operator back-office: staff_session:{token} -> operator name
	KeyStaffSession = "staff_session:%s"
)

var (
	TTLStatusCache  = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
	TTLStaffSession = 12 * time.Hour
)
