package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// VenueRepo reads and seeds the venues table.
type VenueRepo struct {
	db *sql.DB
}

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT id, name, city, country, capacity FROM venues ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Country, &v.Capacity); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Upsert inserts the venue keyed by name and writes the id back to v.
func (r *VenueRepo) Upsert(ctx context.Context, v *model.Venue) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO venues (name, city, country, capacity) VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), city = VALUES(city), country = VALUES(country), capacity = VALUES(capacity)`,
		v.Name, v.City, v.Country, v.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}
