package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/villaflora/go-resto-console/internal/kafka"
	"github.com/villaflora/go-resto-console/internal/redisx"
	"github.com/villaflora/go-resto-console/internal/reservations"
)

// AckService consumes reservation.created and sends the "request received"
// acknowledgment email. Runs in cmd/notifier, decoupled from the booking
// request path.
type AckService struct {
	Redis       *redis.Client
	Mailer      Mailer
	ServiceName string
}

// HandleReservationCreated: dipasang sebagai handler consumer.
func (s *AckService) HandleReservationCreated(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env reservations.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != reservations.EventReservationCreated {
		return nil
	} // ignore

	// 2) dedup via Redis (pakai event_id); at-least-once delivery boleh
	// redeliver, tamu tidak boleh dapat dua email
	service := s.ServiceName
	if service == "" {
		service = "notifier"
	}
	dkey := fmt.Sprintf(redisx.KeyDedup, service, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	// 3) decode payload & kirim
	p, err := kafkax.UnwrapPayload[reservations.ReservationCreatedPayload](env.Payload)
	if err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return fmt.Errorf("payload date: %w", err)
	}

	rec := reservations.Reservation{
		ID:        p.ReservationID,
		FirstName: p.FirstName,
		Email:     p.Email,
		Date:      date,
		TimeSlot:  p.TimeSlot,
		PartySize: p.PartySize,
		Area:      p.Area,
		Status:    reservations.StatusPending,
	}
	subject, body, err := RenderReceived(rec)
	if err != nil {
		return err
	}
	return s.Mailer.Send(ctx, rec.Email, subject, body)
}
