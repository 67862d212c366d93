package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// TicketRepo persists the individual tickets of a booking.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketSelect = "SELECT id, booking_id, ticket_number, qr_code, is_used, created_at FROM tickets"

func scanTicket(s rowScanner) (model.Ticket, error) {
	var (
		t  model.Ticket
		qr sql.NullString
	)
	if err := s.Scan(&t.ID, &t.BookingID, &t.TicketNumber, &qr, &t.IsUsed, &t.CreatedAt); err != nil {
		return model.Ticket{}, err
	}
	if qr.Valid {
		t.QRCode = &qr.String
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// Create inserts t.  A collision on ticket_number returns
// ErrDuplicateTicketNumber.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO tickets (booking_id, ticket_number, qr_code, is_used, created_at) VALUES (?, ?, ?, ?, ?)",
		t.BookingID, t.TicketNumber, t.QRCode, t.IsUsed, t.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateTicketNumber
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ListByBooking returns a booking's tickets in creation order.
func (r *TicketRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Ticket, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, ticketSelect+" WHERE booking_id = ? ORDER BY id", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByNumberForUpdate locks a ticket for check-in.
func (r *TicketRepo) GetByNumberForUpdate(ctx context.Context, number string) (model.Ticket, error) {
	t, err := scanTicket(conn(ctx, r.db).QueryRowContext(ctx, ticketSelect+" WHERE ticket_number = ? FOR UPDATE", number))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// MarkUsed flags a ticket as scanned at the gate.  Only an unused ticket
// is updated; otherwise ErrConflict.
func (r *TicketRepo) MarkUsed(ctx context.Context, id uint64) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE tickets SET is_used = TRUE WHERE id = ? AND is_used = FALSE", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
