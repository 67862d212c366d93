package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tournament-tickets/internal/middleware"
	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/service"
)

// Booker runs the booking transaction.
type Booker interface {
	Book(ctx context.Context, req service.BookingRequest) (service.BookingResult, error)
}

// BookingReader loads stored bookings with their match and category.
type BookingReader interface {
	GetDetail(ctx context.Context, id uint64) (repository.BookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
}

type TicketLister interface {
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.Ticket, error)
}

// BookingHandler serves the booking form, its submission and the pages
// that show a booking afterwards.
type BookingHandler struct {
	Matches  MatchGetter
	Prices   PriceLister
	Bookings BookingReader
	Tickets  TicketLister
	Service  Booker
}

// bookingForm is the booking form as posted (form encoded or JSON).
// Choice fields and the quantity range are checked by the service.
type bookingForm struct {
	TicketPrice   uint64 `json:"ticket_price" form:"ticket_price" validate:"required"`
	Quantity      int    `json:"quantity" form:"quantity"`
	Currency      string `json:"currency" form:"currency" validate:"required"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"required"`
	CustomerName  string `json:"customer_name" form:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" form:"customer_email" validate:"required,email,max=254"`
	CustomerPhone string `json:"customer_phone" form:"customer_phone" validate:"required,max=20"`
}

type bookingJSON struct {
	ID                 uint64              `json:"id"`
	Reference          string              `json:"booking_reference"`
	Match              string              `json:"match"`
	MatchID            uint64              `json:"match_id"`
	Venue              string              `json:"venue"`
	Kickoff            time.Time           `json:"date_time"`
	Category           string              `json:"category"`
	Quantity           int                 `json:"quantity"`
	TotalAmount        string              `json:"total_amount"`
	Currency           model.Currency      `json:"currency"`
	PaymentMethod      model.PaymentMethod `json:"payment_method"`
	PaymentMethodLabel string              `json:"payment_method_label"`
	PaymentStatus      model.PaymentStatus `json:"payment_status"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	CustomerPhone      string              `json:"customer_phone"`
	CreatedAt          time.Time           `json:"created_at"`
}

func toBookingJSON(b model.Booking, m model.Match, cat model.TicketCategory) bookingJSON {
	return bookingJSON{
		ID:                 b.ID,
		Reference:          b.BookingReference,
		Match:              m.String(),
		MatchID:            m.ID,
		Venue:              m.Venue.String(),
		Kickoff:            m.DateTime.UTC(),
		Category:           cat.Name,
		Quantity:           b.Quantity,
		TotalAmount:        b.TotalAmount.StringFixed(2),
		Currency:           b.Currency,
		PaymentMethod:      b.PaymentMethod,
		PaymentMethodLabel: b.PaymentMethod.Label(),
		PaymentStatus:      b.PaymentStatus,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		CreatedAt:          b.CreatedAt.UTC(),
	}
}

func confirmationURL(id uint64) string {
	return fmt.Sprintf("/booking/%d/confirmation/", id)
}

// BookingForm returns what the booking page needs: the match, its price
// table and the currency and payment method choices.
func (h *BookingHandler) BookingForm(c echo.Context) error {
	id, ok := parseID(c, "match_id")
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

	currencies := make([]option, 0, len(model.Currencies))
	for _, cur := range model.Currencies {
		currencies = append(currencies, option{Value: string(cur), Label: cur.Label()})
	}
	methods := make([]option, 0, len(model.PaymentMethods))
	for _, pm := range model.PaymentMethods {
		methods = append(methods, option{Value: string(pm), Label: pm.Label()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"match":            toMatchJSON(m),
		"ticket_prices":    toPriceTable(prices),
		"currencies":       currencies,
		"default_currency": model.DefaultCurrency,
		"payment_methods":  methods,
		"max_quantity":     service.MaxTicketsPerBooking,
	})
}

// CreateBooking submits the booking form for the match in the path.  A
// valid bearer token attaches the booking to that account.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	matchID, ok := parseID(c, "match_id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrMatchNotFound.Error()})
	}
	var form bookingForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&form); err != nil {
		return writeError(c, err)
	}

	req := service.BookingRequest{
		MatchID:       matchID,
		TicketPriceID: form.TicketPrice,
		Quantity:      form.Quantity,
		Currency:      form.Currency,
		PaymentMethod: form.PaymentMethod,
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		CustomerPhone: form.CustomerPhone,
	}
	if uid, ok := middleware.UserID(c); ok {
		req.UserID = &uid
	}

	res, err := h.Service.Book(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	redirect := confirmationURL(res.Booking.ID)
	c.Response().Header().Set(echo.HeaderLocation, redirect)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Booking created successfully! Reference: " + res.Booking.BookingReference,
		"redirect": redirect,
		"booking":  toBookingJSON(res.Booking, res.Match, res.Category),
		"tickets":  res.Tickets,
	})
}

// Confirmation shows a booking and its tickets.
func (h *BookingHandler) Confirmation(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrBookingNotFound.Error()})
	}
	return h.renderBooking(c, id, nil)
}

// MyBookings lists the caller's bookings, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]bookingJSON, 0, len(list))
	for _, d := range list {
		out = append(out, toBookingJSON(d.Booking, d.Match, d.Category))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// MyBooking is Confirmation restricted to the booking's owner.
func (h *BookingHandler) MyBooking(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrBookingNotFound.Error()})
	}
	return h.renderBooking(c, id, &uid)
}

func (h *BookingHandler) renderBooking(c echo.Context, id uint64, owner *uint64) error {
	ctx := c.Request().Context()
	d, err := h.Bookings.GetDetail(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if owner != nil && (d.UserID == nil || *d.UserID != *owner) {
		return writeError(c, repository.ErrForbidden)
	}
	tickets, err := h.Tickets.ListByBooking(ctx, d.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking": toBookingJSON(d.Booking, d.Match, d.Category),
		"tickets": tickets,
	})
}
