package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// Store groups the repositories the booking and back office services
// write through, behind a single transaction boundary.
type Store struct {
	db      *sql.DB
	Matches *MatchRepo
	Prices  *TicketPriceRepo
	Booking *BookingRepo
	Tickets *TicketRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		Matches: NewMatchRepo(db),
		Prices:  NewTicketPriceRepo(db),
		Booking: NewBookingRepo(db),
		Tickets: NewTicketRepo(db),
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTx(ctx, s.db, fn)
}

func (s *Store) GetMatch(ctx context.Context, id uint64) (model.Match, error) {
	return s.Matches.GetByID(ctx, id)
}

func (s *Store) SetMatchCompleted(ctx context.Context, id uint64, completed bool) error {
	return s.Matches.SetCompleted(ctx, id, completed)
}

func (s *Store) GetTicketPriceForUpdate(ctx context.Context, id uint64) (model.TicketPrice, error) {
	return s.Prices.GetForUpdate(ctx, id)
}

func (s *Store) DecrementStock(ctx context.Context, priceID uint64, qty int) error {
	return s.Prices.Decrement(ctx, priceID, qty)
}

func (s *Store) IncrementStock(ctx context.Context, priceID uint64, qty int) error {
	return s.Prices.Increment(ctx, priceID, qty)
}

func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
	return s.Booking.Create(ctx, b)
}

func (s *Store) GetBookingForUpdate(ctx context.Context, id uint64) (model.Booking, error) {
	return s.Booking.GetForUpdate(ctx, id)
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	return s.Booking.UpdateStatus(ctx, id, status)
}

func (s *Store) CreateTicket(ctx context.Context, t *model.Ticket) error {
	return s.Tickets.Create(ctx, t)
}

func (s *Store) GetTicketForUpdate(ctx context.Context, number string) (model.Ticket, error) {
	return s.Tickets.GetByNumberForUpdate(ctx, number)
}

func (s *Store) MarkTicketUsed(ctx context.Context, id uint64) error {
	return s.Tickets.MarkUsed(ctx, id)
}
