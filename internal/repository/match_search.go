package repository

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// MatchPageSize is the fixed page size of the match list and search pages.
const MatchPageSize = 10

// MatchQuery defines filters & pagination for listing upcoming matches.
// Zero values mean "no filter".  Text is matched case-insensitively as a
// substring of either team name, the venue name or the venue city.
type MatchQuery struct {
	Now      time.Time
	Group    model.Group
	TeamCode string
	VenueID  uint64
	Text     string
	Page     int
	PageSize int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in
// a lowercased column.  MySQL's default LIKE escape character is '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// Search lists upcoming, not completed matches ordered by kickoff.  The
// returned Page has the requested number clamped into range.
func (r *MatchRepo) Search(ctx context.Context, q MatchQuery) ([]model.Match, Page, error) {
	where := []string{"m.date_time >= ?", "m.is_completed = FALSE"}
	args := []any{q.Now.UTC()}

	if q.Group != "" {
		where = append(where, "m.group_name = ?")
		args = append(args, string(q.Group))
	}
	if code := strings.ToUpper(strings.TrimSpace(q.TeamCode)); code != "" {
		where = append(where, "(home.code = ? OR away.code = ?)")
		args = append(args, code, code)
	}
	if q.VenueID != 0 {
		where = append(where, "m.venue_id = ?")
		args = append(args, q.VenueID)
	}
	if q.Text != "" {
		like := containsPattern(q.Text)
		where = append(where, "(LOWER(home.name) LIKE ? OR LOWER(away.name) LIKE ? OR LOWER(v.name) LIKE ? OR LOWER(v.city) LIKE ?)")
		args = append(args, like, like, like, like)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM matches m
		JOIN teams home ON home.id = m.home_team_id
		JOIN teams away ON away.id = m.away_team_id
		JOIN venues v   ON v.id = m.venue_id
		WHERE ` + cond
	if err := conn(ctx, r.db).QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, Page{}, err
	}

	size := q.PageSize
	if size < 1 {
		size = MatchPageSize
	}
	page := NewPage(q.Page, total, size)
	if total == 0 {
		return []model.Match{}, page, nil
	}

	dataSQL := matchSelect + " WHERE " + cond + " ORDER BY m.date_time ASC, m.id ASC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), page.Size, page.Offset())

	rows, err := conn(ctx, r.db).QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, Page{}, err
	}
	defer rows.Close()
	items, err := collectMatches(rows)
	if err != nil {
		return nil, Page{}, err
	}
	return items, page, nil
}
