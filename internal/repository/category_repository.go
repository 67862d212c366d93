package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// CategoryRepo reads and seeds ticket_categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]model.TicketCategory, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT id, name, description FROM ticket_categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TicketCategory{}
	for rows.Next() {
		var c model.TicketCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Upsert(ctx context.Context, c *model.TicketCategory) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO ticket_categories (name, description) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), description = VALUES(description)`,
		c.Name, c.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}
