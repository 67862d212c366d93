package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/service"
)

// BookingSearcher backs the back office booking list.
type BookingSearcher interface {
	Search(ctx context.Context, q repository.BookingQuery) ([]repository.BookingDetail, repository.Page, error)
}

// BackOffice is implemented by *service.AdminService.
type BackOffice interface {
	UpdatePaymentStatus(ctx context.Context, bookingID uint64, next model.PaymentStatus) (model.Booking, error)
	CheckIn(ctx context.Context, ticketNumber string) (model.Ticket, error)
	CompleteMatch(ctx context.Context, matchID uint64) error
}

// AdminHandler serves /v1/admin.  Routes are mounted behind JWTAuth and
// RequireRole(ADMIN).
type AdminHandler struct {
	Bookings BookingSearcher
	Admin    BackOffice
}

type statusReq struct {
	Status string `json:"status" form:"status" validate:"required"`
}

// ListBookings searches bookings by reference, customer name or email and
// filters by status and currency.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	q := repository.BookingQuery{
		Reference: c.QueryParam("reference"),
		Text:      c.QueryParam("q"),
		Page:      pageParam(c),
	}
	fields := map[string]string{}
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		st, ok := model.ParsePaymentStatus(s)
		if !ok {
			fields["status"] = invalidChoiceMsg
		}
		q.Status = st
	}
	if s := strings.TrimSpace(c.QueryParam("currency")); s != "" {
		cur, ok := model.ParseCurrency(s)
		if !ok {
			fields["currency"] = invalidChoiceMsg
		}
		q.Currency = cur
	}
	if len(fields) > 0 {
		return writeError(c, &service.ValidationError{Fields: fields})
	}

	list, page, err := h.Bookings.Search(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]bookingJSON, 0, len(list))
	for _, d := range list {
		out = append(out, toBookingJSON(d.Booking, d.Match, d.Category))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "pagination": toPageJSON(page)})
}

const invalidChoiceMsg = "Select a valid choice. That choice is not one of the available choices."

// UpdateBookingStatus moves a booking along the payment state machine.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrBookingNotFound.Error()})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}
	next, ok := model.ParsePaymentStatus(req.Status)
	if !ok {
		return writeError(c, &service.ValidationError{Fields: map[string]string{"status": invalidChoiceMsg}})
	}
	b, err := h.Admin.UpdatePaymentStatus(c.Request().Context(), id, next)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                b.ID,
		"booking_reference": b.BookingReference,
		"payment_status":    b.PaymentStatus,
	})
}

// CheckIn admits the holder of a ticket once.
func (h *AdminHandler) CheckIn(c echo.Context) error {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if number == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrTicketNotFound.Error()})
	}
	t, err := h.Admin.CheckIn(c.Request().Context(), number)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// CompleteMatch closes a match for sale.
func (h *AdminHandler) CompleteMatch(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrMatchNotFound.Error()})
	}
	if err := h.Admin.CompleteMatch(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
