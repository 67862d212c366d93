package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tournament-tickets/internal/clock"
	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
)

func bookedStore(t *testing.T, qty int) (*fakeStore, BookingResult) {
	t.Helper()
	store := newFakeStore()
	req := validRequest()
	req.Quantity = qty
	res, err := NewBookingService(store, clock.NewFixed(testNow), nil).Book(context.Background(), req)
	require.NoError(t, err)
	return store, res
}

func TestCancelReleasesStock(t *testing.T) {
	store, res := bookedStore(t, 3)
	require.Equal(t, 2, store.prices[10].AvailableQuantity)

	svc := NewAdminService(store)
	b, err := svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCancelled, b.PaymentStatus)
	assert.Equal(t, 5, store.prices[10].AvailableQuantity)

	_, err = svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentPending)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestFailedThenRetriedRetakesStock(t *testing.T) {
	store, res := bookedStore(t, 2)
	svc := NewAdminService(store)

	_, err := svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, 5, store.prices[10].AvailableQuantity)

	_, err = svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentPending)
	require.NoError(t, err)
	assert.Equal(t, 3, store.prices[10].AvailableQuantity)
}

func TestRetryFailsWhenStockGone(t *testing.T) {
	store, res := bookedStore(t, 2)
	svc := NewAdminService(store)

	_, err := svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentFailed)
	require.NoError(t, err)
	p := store.prices[10]
	p.AvailableQuantity = 1
	store.prices[10] = p

	_, err = svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentPending)
	assert.ErrorIs(t, err, repository.ErrSoldOut)
	assert.Equal(t, model.PaymentFailed, store.bookings[res.Booking.ID].PaymentStatus)
}

func TestCheckIn(t *testing.T) {
	store, res := bookedStore(t, 1)
	svc := NewAdminService(store)
	number := res.Tickets[0].TicketNumber

	_, err := svc.CheckIn(context.Background(), number)
	assert.ErrorIs(t, err, ErrBookingNotPaid)

	_, err = svc.UpdatePaymentStatus(context.Background(), res.Booking.ID, model.PaymentCompleted)
	require.NoError(t, err)

	tk, err := svc.CheckIn(context.Background(), number)
	require.NoError(t, err)
	assert.True(t, tk.IsUsed)

	_, err = svc.CheckIn(context.Background(), number)
	assert.ErrorIs(t, err, ErrTicketAlreadyUsed)

	_, err = svc.CheckIn(context.Background(), "NOSUCHTICKET")
	assert.ErrorIs(t, err, repository.ErrTicketNotFound)
}

func TestCompleteMatchStopsBookings(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, NewAdminService(store).CompleteMatch(context.Background(), 1))

	_, err := NewBookingService(store, clock.NewFixed(testNow), nil).Book(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrMatchClosed)
}

type countingCache struct {
	calls int
	err   error
}

func (c *countingCache) Invalidate(context.Context) error {
	c.calls++
	return c.err
}

func TestCompleteMatchClearsListingCache(t *testing.T) {
	cache := &countingCache{}
	svc := NewAdminService(newFakeStore()).WithListingCache(cache)
	require.NoError(t, svc.CompleteMatch(context.Background(), 1))
	assert.Equal(t, 1, cache.calls)

	// the match stays completed even when the cache cannot be cleared
	cache.err = errors.New("redis down")
	require.NoError(t, svc.CompleteMatch(context.Background(), 2))
	assert.Equal(t, 2, cache.calls)
}
