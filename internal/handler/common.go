// Package handler exposes the HTTP handlers of the ticket platform: public
// browsing, the price lookup API, the booking flow, accounts and the back
// office.  Handlers depend on small interfaces so they can be tested with
// in-memory fakes.
package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/service"
)

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// pageParam reads ?page.  Missing or non-numeric values mean page 1; out
// of range numbers are clamped later by repository.NewPage.
func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("page")))
	if err != nil {
		return 1
	}
	return n
}

// pageJSON is the pagination block shared by list responses.
type pageJSON struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	NumPages    int   `json:"num_pages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func toPageJSON(p repository.Page) pageJSON {
	return pageJSON{
		Page:        p.Number,
		PageSize:    p.Size,
		NumPages:    p.NumPages,
		Total:       p.Total,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}

// writeError maps domain errors to HTTP responses.  Anything unexpected is
// logged and reported as a generic 500.
func writeError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, repository.ErrMatchNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrTicketNotFound),
		errors.Is(err, repository.ErrTicketPriceNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrMatchClosed),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrTicketAlreadyUsed),
		errors.Is(err, service.ErrBookingNotPaid),
		errors.Is(err, repository.ErrSoldOut):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
