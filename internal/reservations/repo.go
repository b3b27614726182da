package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("reservation not found")

	// ErrAlreadyTriaged: update kondisional gagal karena status sudah bukan
	// PENDING (operator lain lebih dulu). Tidak boleh kirim email kedua.
	ErrAlreadyTriaged = errors.New("reservation already triaged")
)

type Repo struct{ DB *pgxpool.Pool }

const reservationColumns = `id, first_name, last_name, email, phone,
       reservation_date, time_slot, party_size, notes, area,
       status, COALESCE(rejection_reason, ''), created_at`

// Create inserts a new PENDING reservation from the public booking form.
// Validation is repeated here because the form is untrusted input.
func (r *Repo) Create(ctx context.Context, in CreateInput) (Reservation, error) {
	var out Reservation

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.Email == "" {
		return out, fmt.Errorf("missing requester name or email")
	}
	if in.PartySize <= 0 {
		return out, fmt.Errorf("invalid party size: %d", in.PartySize)
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return out, fmt.Errorf("invalid date %q: %w", in.Date, err)
	}
	if _, err := time.Parse("15:04", in.TimeSlot); err != nil {
		return out, fmt.Errorf("invalid time %q: %w", in.TimeSlot, err)
	}

	id := uuid.NewString()
	row := r.DB.QueryRow(ctx, `
		INSERT INTO reservations(id, first_name, last_name, email, phone,
		                         reservation_date, time_slot, party_size, notes, area, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'PENDING')
		RETURNING created_at`,
		id, in.FirstName, in.LastName, in.Email, in.Phone,
		date, in.TimeSlot, in.PartySize, in.Notes, in.Area,
	)
	var createdAt time.Time
	if err := row.Scan(&createdAt); err != nil {
		return out, err
	}

	out = Reservation{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Date:      date,
		TimeSlot:  in.TimeSlot,
		PartySize: in.PartySize,
		Notes:     in.Notes,
		Area:      in.Area,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
	return out, nil
}

// Snapshot returns ALL reservations, newest first. The feed delivers this
// full listing on every change; the differ relies on the newest-first order.
func (r *Repo) Snapshot(ctx context.Context) ([]Reservation, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+reservationColumns+`
	                              FROM reservations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		rec, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id string) (Reservation, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+reservationColumns+`
	                           FROM reservations WHERE id=$1`, id)
	rec, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	return rec, err
}

// UpdateStatus moves a reservation out of PENDING, conditionally: the WHERE
// clause on the current status is the guard against two operators triaging
// the same request (and against repeat clicks double-sending email).
func (r *Repo) UpdateStatus(ctx context.Context, id string, to Status, reason string) error {
	if !CanTransition(StatusPending, to) {
		return fmt.Errorf("invalid target status %q", to)
	}
	if to != StatusRejected {
		// only a rejection carries a reason
		reason = ""
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE reservations
		SET status=$2, rejection_reason=NULLIF($3,'')
		WHERE id=$1 AND status='PENDING'`,
		id, string(to), reason,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// Nol baris: bedakan "tidak ada" vs "sudah di-triage".
	var cur string
	err = r.DB.QueryRow(ctx, `SELECT status FROM reservations WHERE id=$1`, id).Scan(&cur)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyTriaged
}

// CountPending is used by the ops endpoints; display always goes through
// Snapshot.
func (r *Repo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE status='PENDING'`).Scan(&n)
	return n, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanReservation(row rowScanner) (Reservation, error) {
	var rec Reservation
	var status string
	err := row.Scan(&rec.ID, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone,
		&rec.Date, &rec.TimeSlot, &rec.PartySize, &rec.Notes, &rec.Area,
		&status, &rec.RejectionReason, &rec.CreatedAt)
	rec.Status = Status(status)
	return rec, err
}
