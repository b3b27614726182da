package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on startup. Idempotent; fine for a
// single-restaurant deployment, swap for versioned migrations if this ever
// grows multi-tenant.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reservations (
			id               TEXT PRIMARY KEY,
			first_name       TEXT NOT NULL,
			last_name        TEXT NOT NULL DEFAULT '',
			email            TEXT NOT NULL,
			phone            TEXT NOT NULL DEFAULT '',
			reservation_date DATE NOT NULL,
			time_slot        TEXT NOT NULL,
			party_size       INT  NOT NULL CHECK (party_size > 0),
			notes            TEXT NOT NULL DEFAULT '',
			area             TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'PENDING',
			rejection_reason TEXT,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK ((status = 'REJECTED') = (rejection_reason IS NOT NULL))
		)`,
		`CREATE INDEX IF NOT EXISTS reservations_created_idx ON reservations (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS reservations_status_idx ON reservations (status)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			price_cents INT  NOT NULL CHECK (price_cents >= 0),
			available   BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			subject    TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
