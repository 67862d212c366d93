package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// MatchRepo manages fixtures.  Reads join both teams and the venue so
// callers always get a displayable match.
type MatchRepo struct {
	db *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

const matchSelect = `SELECT
		m.id, m.home_team_id, m.away_team_id, m.venue_id, m.date_time, m.group_name, m.match_type, m.is_completed,
		home.name, home.code, home.flag_image,
		away.name, away.code, away.flag_image,
		v.name, v.city, v.country, v.capacity
	FROM matches m
	JOIN teams home ON home.id = m.home_team_id
	JOIN teams away ON away.id = m.away_team_id
	JOIN venues v   ON v.id = m.venue_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(s rowScanner) (model.Match, error) {
	var (
		m                  model.Match
		group, stage       string
		homeFlag, awayFlag sql.NullString
	)
	err := s.Scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.DateTime, &group, &stage, &m.IsCompleted,
		&m.HomeTeam.Name, &m.HomeTeam.Code, &homeFlag,
		&m.AwayTeam.Name, &m.AwayTeam.Code, &awayFlag,
		&m.Venue.Name, &m.Venue.City, &m.Venue.Country, &m.Venue.Capacity,
	)
	if err != nil {
		return model.Match{}, err
	}
	m.Group = model.Group(group)
	m.MatchType = model.Stage(stage)
	m.HomeTeam.ID = m.HomeTeamID
	m.AwayTeam.ID = m.AwayTeamID
	m.Venue.ID = m.VenueID
	if homeFlag.Valid {
		m.HomeTeam.FlagImage = &homeFlag.String
	}
	if awayFlag.Valid {
		m.AwayTeam.FlagImage = &awayFlag.String
	}
	m.DateTime = m.DateTime.UTC()
	return m, nil
}

// GetByID returns a single match regardless of its date or completion.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (model.Match, error) {
	m, err := scanMatch(conn(ctx, r.db).QueryRowContext(ctx, matchSelect+" WHERE m.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, ErrMatchNotFound
	}
	return m, err
}

// Upcoming returns at most limit matches that start at or after now and
// are not completed, soonest first.
func (r *MatchRepo) Upcoming(ctx context.Context, now time.Time, limit int) ([]model.Match, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		matchSelect+" WHERE m.date_time >= ? AND m.is_completed = FALSE ORDER BY m.date_time ASC LIMIT ?",
		now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMatches(rows)
}

func collectMatches(rows *sql.Rows) ([]model.Match, error) {
	out := []model.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create inserts a fixture.  Re-seeding the same fixture (same teams and
// kickoff) returns the existing id.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	if m.MatchType == "" {
		m.MatchType = model.StageGroup
	}
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO matches (home_team_id, away_team_id, venue_id, date_time, group_name, match_type, is_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), venue_id = VALUES(venue_id), group_name = VALUES(group_name)`,
		m.HomeTeamID, m.AwayTeamID, m.VenueID, m.DateTime.UTC(), string(m.Group), string(m.MatchType), m.IsCompleted)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// SetCompleted flips is_completed.  Completed matches drop out of every
// public listing and stop accepting bookings.
func (r *MatchRepo) SetCompleted(ctx context.Context, id uint64, completed bool) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE matches SET is_completed = ? WHERE id = ?", completed, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports 0 affected rows when the value is unchanged
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
