package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// TicketPriceRepo owns the ticket_prices table, the inventory ledger of
// every (match, category) pair.
type TicketPriceRepo struct {
	db *sql.DB
}

func NewTicketPriceRepo(db *sql.DB) *TicketPriceRepo { return &TicketPriceRepo{db: db} }

const priceSelect = `SELECT
		tp.id, tp.match_id, tp.category_id, tp.price_ugx, tp.price_kes, tp.price_tzs, tp.available_quantity,
		c.name, c.description
	FROM ticket_prices tp
	JOIN ticket_categories c ON c.id = tp.category_id`

func scanPrice(s rowScanner) (model.TicketPrice, error) {
	var p model.TicketPrice
	err := s.Scan(&p.ID, &p.MatchID, &p.CategoryID, &p.PriceUGX, &p.PriceKES, &p.PriceTZS, &p.AvailableQuantity,
		&p.Category.Name, &p.Category.Description)
	p.Category.ID = p.CategoryID
	return p, err
}

// ListByMatch returns every price row of a match with its category,
// ordered by category id.  An unknown match yields an empty slice.
func (r *TicketPriceRepo) ListByMatch(ctx context.Context, matchID uint64) ([]model.TicketPrice, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, priceSelect+" WHERE tp.match_id = ? ORDER BY tp.category_id", matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TicketPrice{}
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetForUpdate reads a price row and locks it until the surrounding
// transaction ends.  Must be called with a context from WithTx.
func (r *TicketPriceRepo) GetForUpdate(ctx context.Context, id uint64) (model.TicketPrice, error) {
	p, err := scanPrice(conn(ctx, r.db).QueryRowContext(ctx, priceSelect+" WHERE tp.id = ? FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TicketPrice{}, ErrTicketPriceNotFound
	}
	return p, err
}

// Decrement removes qty tickets from stock.  The guard keeps the count
// from going negative even without a prior lock; no matching row means
// the stock was insufficient.
func (r *TicketPriceRepo) Decrement(ctx context.Context, id uint64, qty int) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE ticket_prices SET available_quantity = available_quantity - ? WHERE id = ? AND available_quantity >= ?",
		qty, id, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSoldOut
	}
	return nil
}

// Increment returns qty tickets to stock after a cancellation.
func (r *TicketPriceRepo) Increment(ctx context.Context, id uint64, qty int) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE ticket_prices SET available_quantity = available_quantity + ? WHERE id = ?", qty, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketPriceNotFound
	}
	return nil
}

// Upsert sets the prices of a (match, category) pair.  Existing stock is
// kept so re-seeding never resurrects sold tickets.
func (r *TicketPriceRepo) Upsert(ctx context.Context, p *model.TicketPrice) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO ticket_prices (match_id, category_id, price_ugx, price_kes, price_tzs, available_quantity)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id),
		   price_ugx = VALUES(price_ugx), price_kes = VALUES(price_kes), price_tzs = VALUES(price_tzs)`,
		p.MatchID, p.CategoryID, p.PriceUGX, p.PriceKES, p.PriceTZS, p.AvailableQuantity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
