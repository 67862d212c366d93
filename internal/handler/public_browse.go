package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tournament-tickets/internal/clock"
	"github.com/iliyamo/tournament-tickets/internal/middleware"
	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

// HomeMatchLimit is how many upcoming matches the home page shows.
const HomeMatchLimit = 6

// MatchReader is the read side of repository.MatchRepo.
type MatchReader interface {
	GetByID(ctx context.Context, id uint64) (model.Match, error)
	Upcoming(ctx context.Context, now time.Time, limit int) ([]model.Match, error)
	Search(ctx context.Context, q repository.MatchQuery) ([]model.Match, repository.Page, error)
}

// PriceLister returns the price table of one match.
type PriceLister interface {
	ListByMatch(ctx context.Context, matchID uint64) ([]model.TicketPrice, error)
}

type TeamLister interface {
	List(ctx context.Context) ([]model.Team, error)
}

type VenueLister interface {
	List(ctx context.Context) ([]model.Venue, error)
}

// PublicHandler serves the unauthenticated browsing pages.
type PublicHandler struct {
	Matches MatchReader
	Prices  PriceLister
	Teams   TeamLister
	Venues  VenueLister
	Clock   clock.Clock
}

// matchJSON is a match as shown on listings.
type matchJSON struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	HomeTeam    model.Team  `json:"home_team"`
	AwayTeam    model.Team  `json:"away_team"`
	Venue       model.Venue `json:"venue"`
	DateTime    time.Time   `json:"date_time"`
	Group       model.Group `json:"group"`
	MatchType   model.Stage `json:"match_type"`
	Stage       string      `json:"stage"`
	IsCompleted bool        `json:"is_completed"`
}

func toMatchJSON(m model.Match) matchJSON {
	return matchJSON{
		ID:          m.ID,
		Title:       m.String(),
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Venue:       m.Venue,
		DateTime:    m.DateTime.UTC(),
		Group:       m.Group,
		MatchType:   m.MatchType,
		Stage:       m.MatchType.Label(),
		IsCompleted: m.IsCompleted,
	}
}

func toMatchList(ms []model.Match) []matchJSON {
	out := make([]matchJSON, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMatchJSON(m))
	}
	return out
}

// priceJSON is one row of a match's price table.  Amounts keep their two
// decimal places.
type priceJSON struct {
	ID                uint64 `json:"id"`
	Category          string `json:"category"`
	Description       string `json:"description"`
	PriceUGX          string `json:"price_ugx"`
	PriceKES          string `json:"price_kes"`
	PriceTZS          string `json:"price_tzs"`
	AvailableQuantity int    `json:"available_quantity"`
}

func toPriceTable(ps []model.TicketPrice) []priceJSON {
	out := make([]priceJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, priceJSON{
			ID:                p.ID,
			Category:          p.Category.Name,
			Description:       p.Category.Description,
			PriceUGX:          p.PriceUGX.StringFixed(2),
			PriceKES:          p.PriceKES.StringFixed(2),
			PriceTZS:          p.PriceTZS.StringFixed(2),
			AvailableQuantity: p.AvailableQuantity,
		})
	}
	return out
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// expireAtNextKickoff caps a cached listing at the first kickoff among
// ms; once that match starts it must drop off every listing.
func expireAtNextKickoff(c echo.Context, ms []model.Match) {
	for _, m := range ms {
		middleware.SetCacheDeadline(c, m.DateTime)
	}
}

// expireAtGlobalKickoff does the same for filtered or paged listings,
// whose results shift when any upcoming match starts.
func (h *PublicHandler) expireAtGlobalKickoff(c echo.Context, now time.Time) error {
	next, err := h.Matches.Upcoming(c.Request().Context(), now, 1)
	if err != nil {
		return err
	}
	expireAtNextKickoff(c, next)
	return nil
}

// Home lists the next few upcoming matches.
func (h *PublicHandler) Home(c echo.Context) error {
	ms, err := h.Matches.Upcoming(c.Request().Context(), h.Clock.Now(), HomeMatchLimit)
	if err != nil {
		return writeError(c, err)
	}
	expireAtNextKickoff(c, ms)
	return c.JSON(http.StatusOK, echo.Map{"upcoming_matches": toMatchList(ms)})
}

// ListMatches pages through upcoming matches filtered by group, team code
// and venue, and returns the filter options alongside.
func (h *PublicHandler) ListMatches(c echo.Context) error {
	ctx := c.Request().Context()
	group := strings.TrimSpace(c.QueryParam("group"))
	team := strings.TrimSpace(c.QueryParam("team"))
	venue := strings.TrimSpace(c.QueryParam("venue"))

	q := repository.MatchQuery{
		Now:      h.Clock.Now(),
		Group:    model.Group(strings.ToUpper(group)),
		TeamCode: team,
		Page:     pageParam(c),
		PageSize: repository.MatchPageSize,
	}
	if venue != "" {
		// a venue id that is not a number can match nothing
		id, err := strconv.ParseUint(venue, 10, 64)
		if err != nil {
			return h.emptyMatchPage(c, group, team, venue)
		}
		q.VenueID = id
	}

	ms, page, err := h.Matches.Search(ctx, q)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.expireAtGlobalKickoff(c, q.Now); err != nil {
		return writeError(c, err)
	}
	return h.matchPage(c, ms, page, group, team, venue)
}

func (h *PublicHandler) emptyMatchPage(c echo.Context, group, team, venue string) error {
	return h.matchPage(c, nil, repository.NewPage(1, 0, repository.MatchPageSize), group, team, venue)
}

func (h *PublicHandler) matchPage(c echo.Context, ms []model.Match, page repository.Page, group, team, venue string) error {
	ctx := c.Request().Context()
	teams, err := h.Teams.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	venues, err := h.Venues.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	groups := make([]option, 0, len(model.Groups))
	for _, g := range model.Groups {
		groups = append(groups, option{Value: string(g), Label: "Group " + string(g)})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"matches":       toMatchList(ms),
		"pagination":    toPageJSON(page),
		"teams":         teams,
		"venues":        venues,
		"groups":        groups,
		"current_group": group,
		"current_team":  team,
		"current_venue": venue,
	})
}

// MatchDetail shows one match, completed or not, with its price table.
func (h *PublicHandler) MatchDetail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrMatchNotFound.Error()})
	}
	ctx := c.Request().Context()
	m, err := h.Matches.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	prices, err := h.Prices.ListByMatch(ctx, m.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"match":         toMatchJSON(m),
		"ticket_prices": toPriceTable(prices),
	})
}

// SearchMatches matches q against team names, venue name and city.
func (h *PublicHandler) SearchMatches(c echo.Context) error {
	query := c.QueryParam("q")
	now := h.Clock.Now()
	ms, page, err := h.Matches.Search(c.Request().Context(), repository.MatchQuery{
		Now:      now,
		Text:     query,
		Page:     pageParam(c),
		PageSize: repository.MatchPageSize,
	})
	if err != nil {
		return writeError(c, err)
	}
	if err := h.expireAtGlobalKickoff(c, now); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"matches":    toMatchList(ms),
		"pagination": toPageJSON(page),
		"query":      query,
	})
}
