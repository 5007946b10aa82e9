package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"support-agent/model"
)

// ErrTicketNotFound is returned when a ticket ID does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

const ticketSchema = `
CREATE TABLE IF NOT EXISTS tickets (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	category    TEXT NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	user_email  TEXT NOT NULL DEFAULT '',
	urgency     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets(user_id, created_at);
`

// OpenDB opens (and creates if needed) the ticket database.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite at %s: %w", path, err)
	}
	if _, err := db.Exec(ticketSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying ticket schema: %w", err)
	}
	return db, nil
}

// TicketRepo stores submitted tickets in SQLite.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	query := `INSERT INTO tickets (id, session_id, user_id, category, subject, description, user_email, urgency, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.SessionID, t.UserID, t.Category, t.Subject, t.Description,
		t.UserEmail, t.Urgency, string(t.Status), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ticket: %w", err)
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	query := `SELECT id, session_id, user_id, category, subject, description, user_email, urgency, status, created_at, updated_at
		FROM tickets WHERE id = ?`
	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	return t, err
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	query := `SELECT id, session_id, user_id, category, subject, description, user_email, urgency, status, created_at, updated_at
		FROM tickets WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tickets for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []*model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, id string, status model.TicketStatus, updatedAt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating ticket status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var t model.Ticket
	var status string
	err := row.Scan(&t.ID, &t.SessionID, &t.UserID, &t.Category, &t.Subject,
		&t.Description, &t.UserEmail, &t.Urgency, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = model.TicketStatus(status)
	return &t, nil
}
