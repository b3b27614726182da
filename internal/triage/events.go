package triage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/villaflora/go-resto-console/internal/kafka"
	"github.com/villaflora/go-resto-console/internal/redisx"
	"github.com/villaflora/go-resto-console/internal/reservations"
)

// KafkaEvents is the production Events implementation: publish the triage
// outcome on the event stream, refresh the status cache, and nudge the live
// feed channel so every open console reloads its snapshot.
type KafkaEvents struct {
	Producer    *kafkax.Producer // topic reservation.triaged
	Redis       *redis.Client
	ServiceName string
}

func (p *KafkaEvents) Triaged(ctx context.Context, rec reservations.Reservation, actor string, notified bool) {
	ev := reservations.Envelope{
		EventID:       uuid.NewString(),
		EventType:     reservations.EventReservationTriaged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.ServiceName,
		CorrelationID: rec.ID,
		Payload: kafkax.MustMarshal(reservations.ReservationTriagedPayload{
			ReservationID: rec.ID,
			NewStatus:     rec.Status,
			Reason:        rec.RejectionReason,
			Actor:         actor,
			Notified:      notified,
		}),
	}
	p.Producer.Publish(reservations.PartitionKey(rec.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(reservations.EventReservationTriaged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	// cache status agar GET cepat, lalu bangunkan feed
	statusKey := fmt.Sprintf(redisx.KeyReservationStatus, rec.ID)
	if err := p.Redis.Set(ctx, statusKey,
		fmt.Sprintf(`{"status":%q}`, rec.Status), redisx.TTLStatusCache).Err(); err != nil {
		log.Printf("triage: status cache: %v", err)
	}
	if err := p.Redis.Publish(ctx, redisx.ChannelReservations, rec.ID).Err(); err != nil {
		log.Printf("triage: feed publish: %v", err)
	}
}
