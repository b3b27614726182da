package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

var (
	// ErrMissingReason: rejection without a reason. Checked before any side
	// effect; the UI asks for a reason too, but the UI is untrusted.
	ErrMissingReason = errors.New("rejection requires a non-empty reason")

	ErrUnauthorized  = errors.New("invalid or expired operator session")
	ErrInvalidTarget = errors.New("transition target must be CONFIRMED or REJECTED")
)

// Store is the slice of the reservation repo the engine needs.
type Store interface {
	GetByID(ctx context.Context, id string) (reservations.Reservation, error)
	UpdateStatus(ctx context.Context, id string, to reservations.Status, reason string) error
}

// Authorizer validates an operator session token and returns the operator
// name. Backed by the redis session store in production.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

// Mailer sends the outcome email for an already-committed transition. The
// reservation passed in carries the new status (and reason, if rejected).
type Mailer interface {
	SendDecision(ctx context.Context, rec reservations.Reservation) error
}

// Events receives the post-commit announcement (event stream + feed nudge).
// Best effort; never affects the result of a transition.
type Events interface {
	Triaged(ctx context.Context, rec reservations.Reservation, actor string, notified bool)
}

// Ack is the operator-facing result of a transition. Notified=false with a
// Warning means the status change committed but the customer email did not
// go out; staff must know the booking IS decided either way.
type Ack struct {
	ID       string              `json:"id"`
	Status   reservations.Status `json:"status"`
	Notified bool                `json:"notified"`
	Warning  string              `json:"warning,omitempty"`
}

// Engine executes guarded status transitions on individual reservations.
//
// Order of operations is the contract: validate (no side effects on
// failure), commit to the store (no email on failure), then send exactly
// one outcome email. Email failure does NOT roll anything back -- staff
// visible state must never be held hostage by the mail provider.
type Engine struct {
	Store  Store
	Auth   Authorizer
	Mailer Mailer
	Events Events // optional
}

// Transition moves reservation id from PENDING to target. The conditional
// store update is the tie-breaker when two operators race on the same
// request: the loser gets reservations.ErrAlreadyTriaged and no email is
// sent for their call.
func (e *Engine) Transition(ctx context.Context, id string, target reservations.Status, reason, actorToken string) (Ack, error) {
	if target != reservations.StatusConfirmed && target != reservations.StatusRejected {
		return Ack{}, ErrInvalidTarget
	}
	reason = strings.TrimSpace(reason)
	if target == reservations.StatusRejected && reason == "" {
		return Ack{}, ErrMissingReason
	}
	if target == reservations.StatusConfirmed {
		// rejection_reason is set iff rejected; drop whatever the client sent
		reason = ""
	}
	actor, err := e.Auth.Authorize(ctx, actorToken)
	if err != nil {
		return Ack{}, ErrUnauthorized
	}

	// 1) authoritative update, conditional on current status PENDING
	if err := e.Store.UpdateStatus(ctx, id, target, reason); err != nil {
		if errors.Is(err, reservations.ErrNotFound) || errors.Is(err, reservations.ErrAlreadyTriaged) {
			return Ack{}, err
		}
		return Ack{}, fmt.Errorf("store update: %w", err)
	}

	ack := Ack{ID: id, Status: target}

	// 2) best-effort notification; the transition above already committed
	rec, err := e.Store.GetByID(ctx, id)
	if err != nil {
		ack.Warning = fmt.Sprintf("load for notification failed: %v", err)
	} else if err := e.Mailer.SendDecision(ctx, rec); err != nil {
		ack.Warning = fmt.Sprintf("notification failed: %v", err)
	} else {
		ack.Notified = true
	}

	// 3) announce for the event stream / live feed
	if e.Events != nil {
		rec.ID = id
		rec.Status = target
		rec.RejectionReason = reason
		e.Events.Triaged(ctx, rec, actor, ack.Notified)
	}
	return ack, nil
}
