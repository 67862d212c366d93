package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

// AdminStore is the persistence used by back office operations.
type AdminStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBookingForUpdate(ctx context.Context, id uint64) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint64, status model.PaymentStatus) error
	IncrementStock(ctx context.Context, priceID uint64, qty int) error
	DecrementStock(ctx context.Context, priceID uint64, qty int) error
	GetTicketForUpdate(ctx context.Context, number string) (model.Ticket, error)
	MarkTicketUsed(ctx context.Context, id uint64) error
	SetMatchCompleted(ctx context.Context, id uint64, completed bool) error
}

// ListingCache drops cached match listings.
type ListingCache interface {
	Invalidate(ctx context.Context) error
}

type AdminService struct {
	store AdminStore
	cache ListingCache
}

func NewAdminService(store AdminStore) *AdminService {
	return &AdminService{store: store}
}

// WithListingCache makes CompleteMatch clear cached listings.
func (s *AdminService) WithListingCache(cache ListingCache) *AdminService {
	s.cache = cache
	return s
}

// UpdatePaymentStatus moves a booking to next.  Entering cancelled or
// failed returns the tickets to stock; leaving failed for pending takes
// them again and fails with repository.ErrSoldOut if they are gone.
func (s *AdminService) UpdatePaymentStatus(ctx context.Context, bookingID uint64, next model.PaymentStatus) (model.Booking, error) {
	var out model.Booking
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.store.GetBookingForUpdate(txCtx, bookingID)
		if err != nil {
			return err
		}
		if !b.PaymentStatus.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, b.PaymentStatus, next)
		}
		switch {
		case next.ReleasesStock() && !b.PaymentStatus.ReleasesStock():
			if err := s.store.IncrementStock(txCtx, b.TicketPriceID, b.Quantity); err != nil {
				return fmt.Errorf("release stock: %w", err)
			}
		case !next.ReleasesStock() && b.PaymentStatus.ReleasesStock():
			if err := s.store.DecrementStock(txCtx, b.TicketPriceID, b.Quantity); err != nil {
				return err
			}
		}
		if err := s.store.UpdateBookingStatus(txCtx, b.ID, next); err != nil {
			return err
		}
		b.PaymentStatus = next
		out = b
		return nil
	})
	return out, err
}

// CheckIn marks a ticket as used at the gate.  The ticket's booking must
// be paid and the ticket unused.
func (s *AdminService) CheckIn(ctx context.Context, ticketNumber string) (model.Ticket, error) {
	var out model.Ticket
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		t, err := s.store.GetTicketForUpdate(txCtx, ticketNumber)
		if err != nil {
			return err
		}
		if t.IsUsed {
			return ErrTicketAlreadyUsed
		}
		b, err := s.store.GetBookingForUpdate(txCtx, t.BookingID)
		if err != nil {
			return err
		}
		if b.PaymentStatus != model.PaymentCompleted {
			return ErrBookingNotPaid
		}
		if err := s.store.MarkTicketUsed(txCtx, t.ID); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrTicketAlreadyUsed
			}
			return err
		}
		t.IsUsed = true
		out = t
		return nil
	})
	return out, err
}

// CompleteMatch closes a match for sale and hides it from listings.  A
// failure to clear the listing cache is logged; cached pages then expire
// on their own TTL.
func (s *AdminService) CompleteMatch(ctx context.Context, matchID uint64) error {
	if err := s.store.SetMatchCompleted(ctx, matchID, true); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("match %d: clear listing cache: %v", matchID, err)
		}
	}
	return nil
}
