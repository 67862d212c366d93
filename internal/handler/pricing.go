package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"

	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

const maxPriceRequestBytes = 64 << 10

// MatchGetter loads a single match.
type MatchGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Match, error)
}

// PricingHandler answers the price lookup used by the booking form when
// the currency selector changes.
type PricingHandler struct {
	Matches MatchGetter
	Prices  PriceLister
}

type currencyPrice struct {
	ID                uint64  `json:"id"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	AvailableQuantity int     `json:"available_quantity"`
	Currency          string  `json:"currency"`
}

func priceFailure(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// TicketPrices handles POST {match_id, currency}.  An unknown match is a
// normal answer (200, success false), not a fault.
func (h *PricingHandler) TicketPrices(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return priceFailure(c, http.StatusMethodNotAllowed, "Invalid request")
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPriceRequestBytes))
	if err != nil || !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return priceFailure(c, http.StatusBadRequest, "Invalid request")
	}

	cur := model.DefaultCurrency
	if v := gjson.GetBytes(body, "currency"); v.Exists() && v.Type != gjson.Null && strings.TrimSpace(v.String()) != "" {
		parsed, ok := model.ParseCurrency(v.String())
		if !ok {
			return priceFailure(c, http.StatusBadRequest, "Invalid currency")
		}
		cur = parsed
	}

	id, ok := matchIDFrom(gjson.GetBytes(body, "match_id"))
	if !ok {
		return priceFailure(c, http.StatusOK, "Match not found")
	}
	ctx := c.Request().Context()
	m, err := h.Matches.GetByID(ctx, id)
	if errors.Is(err, repository.ErrMatchNotFound) {
		return priceFailure(c, http.StatusOK, "Match not found")
	}
	if err != nil {
		return writeError(c, err)
	}

	rows, err := h.Prices.ListByMatch(ctx, m.ID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]currencyPrice, 0, len(rows))
	for _, p := range rows {
		unit, _ := p.UnitPrice(cur)
		out = append(out, currencyPrice{
			ID:                p.ID,
			Category:          p.Category.Name,
			Description:       p.Category.Description,
			Price:             unit.InexactFloat64(),
			AvailableQuantity: p.AvailableQuantity,
			Currency:          string(cur),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "prices": out})
}

// matchIDFrom accepts a JSON number or a numeric string.
func matchIDFrom(v gjson.Result) (uint64, bool) {
	switch v.Type {
	case gjson.Number:
		n := v.Uint()
		return n, n > 0 && float64(n) == v.Num
	case gjson.String:
		n, err := strconv.ParseUint(strings.TrimSpace(v.Str), 10, 64)
		return n, err == nil && n > 0
	}
	return 0, false
}
