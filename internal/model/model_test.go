package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayStrings(t *testing.T) {
	home := Team{Name: "Kenya", Code: "KEN"}
	away := Team{Name: "DR Congo", Code: "DRC"}
	m := Match{
		HomeTeam: home,
		AwayTeam: away,
		DateTime: time.Date(2025, 8, 3, 15, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Kenya (KEN)", home.String())
	assert.Equal(t, "KEN vs DRC - 2025-08-03 15:00", m.String())
	assert.Equal(t, "Nyayo National Stadium, Nairobi", Venue{Name: "Nyayo National Stadium", City: "Nairobi"}.String())
	assert.Equal(t, "Booking ABCDE12345 - Jane", Booking{BookingReference: "ABCDE12345", CustomerName: "Jane"}.String())
}

func TestParseEnums(t *testing.T) {
	c, ok := ParseCurrency(" kes ")
	assert.True(t, ok)
	assert.Equal(t, CurrencyKES, c)
	_, ok = ParseCurrency("USD")
	assert.False(t, ok)

	pm, ok := ParsePaymentMethod("MPESA_KE")
	assert.True(t, ok)
	assert.Equal(t, PaymentMpesaKE, pm)
	_, ok = ParsePaymentMethod("paypal")
	assert.False(t, ok)

	g, ok := ParseGroup("c")
	assert.True(t, ok)
	assert.Equal(t, GroupC, g)
	_, ok = ParseGroup("E")
	assert.False(t, ok)

	assert.True(t, StageFinal.Valid())
	assert.False(t, Stage("playoff").Valid())
}

func TestTicketPriceTotal(t *testing.T) {
	p := TicketPrice{
		PriceUGX: decimal.RequireFromString("7500.00"),
		PriceKES: decimal.RequireFromString("500.00"),
		PriceTZS: decimal.RequireFromString("12500.00"),
	}

	total, ok := p.Total(CurrencyKES, 3)
	require.True(t, ok)
	assert.Equal(t, "1500.00", total.StringFixed(2))
	assert.True(t, total.Equal(decimal.RequireFromString("1500")))

	unit, ok := p.UnitPrice(CurrencyTZS)
	require.True(t, ok)
	assert.Equal(t, "12500.00", unit.StringFixed(2))

	_, ok = p.Total(Currency("EUR"), 1)
	assert.False(t, ok)

	assert.True(t, p.ValidPrices())
	p.PriceKES = decimal.Zero
	assert.False(t, p.ValidPrices())
}

func TestTotalIsExactForFractionalPrices(t *testing.T) {
	p := TicketPrice{PriceKES: decimal.RequireFromString("0.10")}
	total, ok := p.Total(CurrencyKES, 3)
	require.True(t, ok)
	assert.Equal(t, "0.30", total.StringFixed(2))
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		ok       bool
	}{
		{PaymentPending, PaymentCompleted, true},
		{PaymentPending, PaymentCancelled, true},
		{PaymentFailed, PaymentPending, true},
		{PaymentCompleted, PaymentCancelled, false},
		{PaymentCancelled, PaymentPending, false},
		{PaymentPending, PaymentPending, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
	assert.True(t, PaymentCancelled.ReleasesStock())
	assert.False(t, PaymentCompleted.ReleasesStock())
}

func TestMatchUpcoming(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	m := Match{DateTime: now.Add(time.Hour)}
	assert.True(t, m.Upcoming(now))
	m.IsCompleted = true
	assert.False(t, m.Upcoming(now))
	m = Match{DateTime: now.Add(-time.Hour)}
	assert.False(t, m.Upcoming(now))
}
