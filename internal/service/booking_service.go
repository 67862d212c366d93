// Package service holds the booking transaction and back office
// operations.  Persistence is reached through small store interfaces so
// the rules can be exercised without a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/tournament-tickets/internal/clock"
	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/queue"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

// MaxTicketsPerBooking caps the quantity of a single booking.
const MaxTicketsPerBooking = 10

// BookingStore is the persistence the booking transaction needs.  Calls
// made with the context handed to the WithTx callback share one
// transaction.
type BookingStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetMatch(ctx context.Context, id uint64) (model.Match, error)
	GetTicketPriceForUpdate(ctx context.Context, id uint64) (model.TicketPrice, error)
	DecrementStock(ctx context.Context, priceID uint64, qty int) error
	CreateBooking(ctx context.Context, b *model.Booking) error
	CreateTicket(ctx context.Context, t *model.Ticket) error
}

// Publisher delivers booking events after commit.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingRequest is a purchase as submitted by the booking form.
type BookingRequest struct {
	MatchID       uint64
	TicketPriceID uint64
	Quantity      int
	Currency      string
	PaymentMethod string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	UserID        *uint64
}

// BookingResult is a committed booking with its tickets.
type BookingResult struct {
	Booking  model.Booking
	Tickets  []model.Ticket
	Match    model.Match
	Category model.TicketCategory
}

type BookingService struct {
	store     BookingStore
	clock     clock.Clock
	publisher Publisher
	newCode   CodeGenerator
}

// NewBookingService wires the service.  pub may be nil to disable events.
func NewBookingService(store BookingStore, clk clock.Clock, pub Publisher) *BookingService {
	return &BookingService{store: store, clock: clk, publisher: pub, newCode: RandomCode}
}

// WithCodeGenerator replaces the identifier source (tests).
func (s *BookingService) WithCodeGenerator(gen CodeGenerator) *BookingService {
	s.newCode = gen
	return s
}

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

func stockMessage(available int) string {
	return fmt.Sprintf("Only %d tickets available for this category.", available)
}

// validate checks everything that does not need the database.
func validate(req BookingRequest) (model.Currency, model.PaymentMethod, *ValidationError) {
	fields := map[string]string{}
	switch {
	case req.Quantity < 1:
		fields["quantity"] = "Ensure this value is greater than or equal to 1."
	case req.Quantity > MaxTicketsPerBooking:
		fields["quantity"] = fmt.Sprintf("Ensure this value is less than or equal to %d.", MaxTicketsPerBooking)
	}
	cur, ok := model.ParseCurrency(req.Currency)
	if !ok {
		fields["currency"] = invalidChoice
	}
	method, ok := model.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		fields["payment_method"] = invalidChoice
	}
	if req.TicketPriceID == 0 {
		fields["ticket_price"] = "This field is required."
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		fields["customer_name"] = "This field is required."
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		fields["customer_email"] = "This field is required."
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		fields["customer_phone"] = "This field is required."
	}
	if len(fields) > 0 {
		return "", "", &ValidationError{Fields: fields}
	}
	return cur, method, nil
}

// Book validates req and, in one transaction, locks the price row, checks
// stock, stores the booking, decrements stock and creates one ticket per
// unit.  Any failure leaves no rows behind.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (BookingResult, error) {
	cur, method, verr := validate(req)
	if verr != nil {
		return BookingResult{}, verr
	}

	var res BookingResult
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		match, err := s.store.GetMatch(txCtx, req.MatchID)
		if err != nil {
			return err
		}
		if match.IsCompleted {
			return ErrMatchClosed
		}

		price, err := s.store.GetTicketPriceForUpdate(txCtx, req.TicketPriceID)
		if errors.Is(err, repository.ErrTicketPriceNotFound) {
			return invalid("ticket_price", invalidChoice)
		}
		if err != nil {
			return err
		}
		if price.MatchID != match.ID {
			return invalid("ticket_price", invalidChoice)
		}
		if req.Quantity > price.AvailableQuantity {
			return invalid("quantity", stockMessage(price.AvailableQuantity))
		}

		total, err := bookingTotal(price, cur, req.Quantity)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		b := model.Booking{
			UserID:        req.UserID,
			TicketPriceID: price.ID,
			Quantity:      req.Quantity,
			TotalAmount:   total,
			Currency:      cur,
			PaymentMethod: method,
			PaymentStatus: model.PaymentPending,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.insertBooking(txCtx, &b); err != nil {
			return err
		}

		if err := s.store.DecrementStock(txCtx, price.ID, req.Quantity); err != nil {
			if errors.Is(err, repository.ErrSoldOut) {
				return invalid("quantity", stockMessage(price.AvailableQuantity))
			}
			return fmt.Errorf("decrement stock: %w", err)
		}

		tickets := make([]model.Ticket, 0, req.Quantity)
		for i := 0; i < req.Quantity; i++ {
			t := model.Ticket{BookingID: b.ID, CreatedAt: now}
			if err := s.insertTicket(txCtx, &t); err != nil {
				return err
			}
			tickets = append(tickets, t)
		}

		res = BookingResult{Booking: b, Tickets: tickets, Match: match, Category: price.Category}
		return nil
	})
	if err != nil {
		return BookingResult{}, err
	}

	s.publish(ctx, res)
	return res, nil
}

// bookingTotal prices quantity units in cur.  A currency without a price
// column is reported against the currency field instead of storing zero.
func bookingTotal(p model.TicketPrice, cur model.Currency, quantity int) (decimal.Decimal, error) {
	total, ok := p.Total(cur, quantity)
	if !ok {
		return decimal.Zero, invalid("currency", invalidChoice)
	}
	return total, nil
}

func (s *BookingService) insertBooking(ctx context.Context, b *model.Booking) error {
	for attempt := 0; attempt < maxIdentifierAttempts; attempt++ {
		ref, err := s.newCode(referenceLength)
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		b.BookingReference = ref
		err = s.store.CreateBooking(ctx, b)
		if errors.Is(err, repository.ErrDuplicateReference) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	}
	return ErrIdentifierExhausted
}

func (s *BookingService) insertTicket(ctx context.Context, t *model.Ticket) error {
	for attempt := 0; attempt < maxIdentifierAttempts; attempt++ {
		num, err := s.newCode(ticketNumberLength)
		if err != nil {
			return fmt.Errorf("generate ticket number: %w", err)
		}
		t.TicketNumber = num
		err = s.store.CreateTicket(ctx, t)
		if errors.Is(err, repository.ErrDuplicateTicketNumber) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		return nil
	}
	return ErrIdentifierExhausted
}

// publish is best effort; the booking is already committed.
func (s *BookingService) publish(ctx context.Context, res BookingResult) {
	if s.publisher == nil {
		return
	}
	numbers := make([]string, 0, len(res.Tickets))
	for _, t := range res.Tickets {
		numbers = append(numbers, t.TicketNumber)
	}
	b := res.Booking
	ev := queue.BookingCreatedEvent{
		BookingID:     b.ID,
		Reference:     b.BookingReference,
		UserID:        b.UserID,
		MatchID:       res.Match.ID,
		Match:         res.Match.String(),
		Venue:         res.Match.Venue.String(),
		Category:      res.Category.Name,
		Quantity:      b.Quantity,
		TicketNumbers: numbers,
		TotalAmount:   b.TotalAmount.StringFixed(2),
		Currency:      string(b.Currency),
		PaymentMethod: string(b.PaymentMethod),
		CustomerEmail: b.CustomerEmail,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.publisher.PublishBookingCreated(pctx, ev); err != nil {
		log.Printf("booking %s: publish event failed: %v", b.BookingReference, err)
	}
}
