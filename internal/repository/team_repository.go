package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// TeamRepo reads and seeds the teams table.
type TeamRepo struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

// List returns every team ordered by name, used for the match filter.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT id, name, code, flag_image FROM teams ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Team{}
	for rows.Next() {
		var t model.Team
		var flag sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &flag); err != nil {
			return nil, err
		}
		if flag.Valid {
			t.FlagImage = &flag.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Upsert inserts the team or refreshes its name and flag, keyed by code.
// The row id is written back to t.
func (r *TeamRepo) Upsert(ctx context.Context, t *model.Team) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO teams (name, code, flag_image) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), name = VALUES(name), flag_image = VALUES(flag_image)`,
		t.Name, t.Code, t.FlagImage)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}
