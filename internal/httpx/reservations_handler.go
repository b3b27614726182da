package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/villaflora/go-resto-console/internal/auth"
	"github.com/villaflora/go-resto-console/internal/feed"
	kafkax "github.com/villaflora/go-resto-console/internal/kafka"
	"github.com/villaflora/go-resto-console/internal/redisx"
	"github.com/villaflora/go-resto-console/internal/reservations"
	"github.com/villaflora/go-resto-console/internal/triage"
)

// ReservationsHandler carries the public booking surface and the staff
// triage console endpoints.
type ReservationsHandler struct {
	Repo     *reservations.Repo
	Engine   *triage.Engine
	Hub      *feed.Hub
	Sessions *auth.Sessions
	Redis    *redis.Client
	Producer *kafkax.Producer // topic reservation.created
	Service  string
}

type transitionReq struct {
	TargetStatus string `json:"target_status"` // CONFIRMED | REJECTED
	Reason       string `json:"reason,omitempty"`
}

type loginReq struct {
	Code     string `json:"code"`
	Operator string `json:"operator,omitempty"`
}

func (h *ReservationsHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(Timeout())

		// public booking surface
		r.Post("/reservations", h.createReservation)

		// staff console
		r.Post("/staff/login", h.login)
		r.Post("/staff/logout", h.logout)
		r.Get("/staff/reservations", h.listReservations)
		r.Post("/staff/reservations/{id}/transition", h.transition)
	})

	// long-lived: no timeout middleware here
	r.Get("/staff/feed", h.serveFeed)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// bearerToken pulls the operator session token from the Authorization
// header, falling back to ?token=. The feed socket prefers the subprotocol
// carrier (see feedToken); the query fallback stays for older consoles even
// though it leaks the token into the request log.
func bearerToken(r *http.Request) string {
	if hv := r.Header.Get("Authorization"); strings.HasPrefix(hv, "Bearer ") {
		return strings.TrimPrefix(hv, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func (h *ReservationsHandler) createReservation(w http.ResponseWriter, r *http.Request) {
	var in reservations.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Repo.Create(ctx, in)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// cache status (PENDING) agar GET cepat
	statusKey := fmt.Sprintf(redisx.KeyReservationStatus, rec.ID)
	_ = h.Redis.Set(ctx, statusKey, `{"status":"PENDING"}`, redisx.TTLStatusCache).Err()

	// publish event (envelope v1) -- cmd/notifier kirim email acknowledgment
	ev := reservations.Envelope{
		EventID:       uuid.NewString(),
		EventType:     reservations.EventReservationCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: rec.ID,
		Payload: kafkax.MustMarshal(reservations.ReservationCreatedPayload{
			ReservationID: rec.ID,
			FirstName:     rec.FirstName,
			Email:         rec.Email,
			Date:          rec.Date.Format("2006-01-02"),
			TimeSlot:      rec.TimeSlot,
			PartySize:     rec.PartySize,
			Area:          rec.Area,
		}),
	}
	h.Producer.Publish(reservations.PartitionKey(rec.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(reservations.EventReservationCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	// bangunkan feed: semua konsol yang terbuka reload snapshot
	if err := h.Redis.Publish(ctx, redisx.ChannelReservations, rec.ID).Err(); err != nil {
		log.Printf("booking: feed publish: %v", err)
	}

	writeJSON(w, http.StatusAccepted, rec)
}

func (h *ReservationsHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	token, err := h.Sessions.Login(r.Context(), req.Code, req.Operator)
	if errors.Is(err, auth.ErrBadCode) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid access code"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *ReservationsHandler) logout(w http.ResponseWriter, r *http.Request) {
	_ = h.Sessions.Logout(r.Context(), bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationsHandler) listReservations(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.Authorize(r.Context(), bearerToken(r)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	snap, err := h.Repo.Snapshot(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// partition only; prev=len(snap) can never report an arrival
	pending, completed, _ := triage.Diff(len(snap), snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"pending":   pending,
		"completed": completed,
	})
}

func (h *ReservationsHandler) transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req transitionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ack, err := h.Engine.Transition(ctx, id,
		reservations.Status(strings.ToUpper(req.TargetStatus)), req.Reason, bearerToken(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ack)
	case errors.Is(err, triage.ErrInvalidTarget), errors.Is(err, triage.ErrMissingReason):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, triage.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, reservations.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, reservations.ErrAlreadyTriaged):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
