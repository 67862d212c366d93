// Package seed loads the tournament catalog: teams, venues, ticket
// categories, the group stage fixtures and a price list per match.
// Running it twice leaves the database unchanged apart from prices.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

const kickoffLayout = "2006-01-02 15:04"

// Writer is the persistence the seed needs.
type Writer interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	UpsertTeam(ctx context.Context, t *model.Team) error
	UpsertVenue(ctx context.Context, v *model.Venue) error
	UpsertCategory(ctx context.Context, c *model.TicketCategory) error
	CreateMatch(ctx context.Context, m *model.Match) error
	UpsertPrice(ctx context.Context, p *model.TicketPrice) error
}

// Summary counts the rows written (inserted or refreshed).
type Summary struct {
	Teams, Venues, Categories, Matches, Prices int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d teams, %d venues, %d categories, %d matches, %d prices",
		s.Teams, s.Venues, s.Categories, s.Matches, s.Prices)
}

// Run writes the whole catalog in one transaction.
func Run(ctx context.Context, w Writer) (Summary, error) {
	var sum Summary
	err := w.WithTx(ctx, func(ctx context.Context) error {
		teams := make(map[string]uint64, len(Teams))
		for _, t := range Teams {
			t := t
			if err := w.UpsertTeam(ctx, &t); err != nil {
				return fmt.Errorf("team %s: %w", t.Code, err)
			}
			teams[t.Code] = t.ID
			sum.Teams++
		}

		venues := make(map[string]uint64, len(Venues))
		for _, v := range Venues {
			v := v
			if err := w.UpsertVenue(ctx, &v); err != nil {
				return fmt.Errorf("venue %s: %w", v.Name, err)
			}
			venues[v.Name] = v.ID
			sum.Venues++
		}

		cats := make([]model.TicketCategory, 0, len(Categories))
		for _, c := range Categories {
			c := c
			if _, ok := BasePrices[c.Name]; !ok {
				return fmt.Errorf("category %s has no base price", c.Name)
			}
			if err := w.UpsertCategory(ctx, &c); err != nil {
				return fmt.Errorf("category %s: %w", c.Name, err)
			}
			cats = append(cats, c)
			sum.Categories++
		}

		for _, f := range Fixtures {
			m, err := f.match(teams, venues)
			if err != nil {
				return err
			}
			if err := w.CreateMatch(ctx, &m); err != nil {
				return fmt.Errorf("match %s vs %s: %w", f.Home, f.Away, err)
			}
			sum.Matches++

			for _, c := range cats {
				p, err := priceFor(m.ID, c)
				if err != nil {
					return err
				}
				if err := w.UpsertPrice(ctx, &p); err != nil {
					return fmt.Errorf("price %s vs %s %s: %w", f.Home, f.Away, c.Name, err)
				}
				sum.Prices++
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (f Fixture) match(teams, venues map[string]uint64) (model.Match, error) {
	home, ok := teams[f.Home]
	if !ok {
		return model.Match{}, fmt.Errorf("fixture references unknown team %q", f.Home)
	}
	away, ok := teams[f.Away]
	if !ok {
		return model.Match{}, fmt.Errorf("fixture references unknown team %q", f.Away)
	}
	if home == away {
		return model.Match{}, fmt.Errorf("fixture %s vs %s: a team cannot play itself", f.Home, f.Away)
	}
	venue, ok := venues[f.Venue]
	if !ok {
		return model.Match{}, fmt.Errorf("fixture references unknown venue %q", f.Venue)
	}
	kickoff, err := time.ParseInLocation(kickoffLayout, f.Kickoff, time.UTC)
	if err != nil {
		return model.Match{}, fmt.Errorf("fixture %s vs %s: %w", f.Home, f.Away, err)
	}
	return model.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		VenueID:    venue,
		DateTime:   kickoff,
		Group:      f.Group,
		MatchType:  model.StageGroup,
	}, nil
}

func priceFor(matchID uint64, c model.TicketCategory) (model.TicketPrice, error) {
	bp := BasePrices[c.Name]
	p := model.TicketPrice{
		MatchID:           matchID,
		CategoryID:        c.ID,
		AvailableQuantity: bp.Quantity,
	}
	var err error
	if p.PriceKES, err = decimal.NewFromString(bp.KES); err != nil {
		return p, err
	}
	if p.PriceUGX, err = decimal.NewFromString(bp.UGX); err != nil {
		return p, err
	}
	if p.PriceTZS, err = decimal.NewFromString(bp.TZS); err != nil {
		return p, err
	}
	if !p.ValidPrices() {
		return p, fmt.Errorf("category %s: prices must be at least %s", c.Name, model.MinPrice)
	}
	return p, nil
}

// SQLWriter writes through the MySQL repositories.
type SQLWriter struct {
	db         *sql.DB
	teams      *repository.TeamRepo
	venues     *repository.VenueRepo
	categories *repository.CategoryRepo
	matches    *repository.MatchRepo
	prices     *repository.TicketPriceRepo
}

func NewSQLWriter(db *sql.DB) *SQLWriter {
	return &SQLWriter{
		db:         db,
		teams:      repository.NewTeamRepo(db),
		venues:     repository.NewVenueRepo(db),
		categories: repository.NewCategoryRepo(db),
		matches:    repository.NewMatchRepo(db),
		prices:     repository.NewTicketPriceRepo(db),
	}
}

func (w *SQLWriter) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return repository.WithTx(ctx, w.db, fn)
}

func (w *SQLWriter) UpsertTeam(ctx context.Context, t *model.Team) error {
	return w.teams.Upsert(ctx, t)
}

func (w *SQLWriter) UpsertVenue(ctx context.Context, v *model.Venue) error {
	return w.venues.Upsert(ctx, v)
}

func (w *SQLWriter) UpsertCategory(ctx context.Context, c *model.TicketCategory) error {
	return w.categories.Upsert(ctx, c)
}

func (w *SQLWriter) CreateMatch(ctx context.Context, m *model.Match) error {
	return w.matches.Create(ctx, m)
}

func (w *SQLWriter) UpsertPrice(ctx context.Context, p *model.TicketPrice) error {
	return w.prices.Upsert(ctx, p)
}

// UserCreator is implemented by *repository.UserRepo.
type UserCreator interface {
	Create(ctx context.Context, email, password string, role model.Role, cost int) (uint64, error)
}

// EnsureAdmin creates a back office account unless the email is taken.
func EnsureAdmin(ctx context.Context, users UserCreator, email, password string, cost int) error {
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}
	id, err := users.Create(ctx, email, password, model.RoleAdmin, cost)
	if errors.Is(err, repository.ErrEmailExists) {
		log.Printf("seed: admin %s already exists", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Printf("seed: created admin %s (id=%d)", email, id)
	return nil
}
