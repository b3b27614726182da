package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo holds the routine site content: menu items and contact-form
// messages. Plain CRUD, nothing clever.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ListMenu(ctx context.Context) ([]MenuItem, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, description, category, price_cents, available, updated_at
	                              FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.PriceCents, &m.Available, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) UpsertMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	if strings.TrimSpace(m.Name) == "" {
		return m, fmt.Errorf("menu item needs a name")
	}
	if m.PriceCents < 0 {
		return m, fmt.Errorf("invalid price: %d", m.PriceCents)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.UpdatedAt = time.Now().UTC()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO menu_items(id, name, description, category, price_cents, available, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description,
			category=EXCLUDED.category, price_cents=EXCLUDED.price_cents,
			available=EXCLUDED.available, updated_at=EXCLUDED.updated_at`,
		m.ID, m.Name, m.Description, m.Category, m.PriceCents, m.Available, m.UpdatedAt)
	return m, err
}

func (r *Repo) CreateContactMessage(ctx context.Context, msg ContactMessage) (ContactMessage, error) {
	if strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Body) == "" {
		return msg, fmt.Errorf("contact message needs email and body")
	}
	msg.ID = uuid.NewString()
	row := r.DB.QueryRow(ctx, `
		INSERT INTO contact_messages(id, name, email, subject, body)
		VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body)
	if err := row.Scan(&msg.CreatedAt); err != nil {
		return msg, err
	}
	return msg, nil
}

func (r *Repo) ListContactMessages(ctx context.Context, limit int) ([]ContactMessage, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx, `SELECT id, name, email, subject, body, created_at
	                              FROM contact_messages ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
