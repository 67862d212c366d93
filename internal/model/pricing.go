package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the three currencies tickets are sold in.
type Currency string

const (
	CurrencyUGX Currency = "UGX"
	CurrencyKES Currency = "KES"
	CurrencyTZS Currency = "TZS"
)

// DefaultCurrency is used by the price lookup when none is given.
const DefaultCurrency = CurrencyKES

var currencyLabels = map[Currency]string{
	CurrencyUGX: "Ugandan Shilling",
	CurrencyKES: "Kenyan Shilling",
	CurrencyTZS: "Tanzanian Shilling",
}

// Currencies lists the accepted currencies in form order.
var Currencies = []Currency{CurrencyUGX, CurrencyKES, CurrencyTZS}

// ParseCurrency normalises s and reports whether it names a known currency.
func ParseCurrency(s string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := currencyLabels[c]
	return c, ok
}

func (c Currency) Label() string { return currencyLabels[c] }

// TicketPrice holds the per-match, per-category price in each currency
// and the remaining inventory for that pair.  AvailableQuantity is the
// authoritative stock count and only changes inside a booking or a
// cancellation transaction.
type TicketPrice struct {
	ID                uint64          `json:"id"`
	MatchID           uint64          `json:"match_id"`
	CategoryID        uint64          `json:"category_id"`
	PriceUGX          decimal.Decimal `json:"price_ugx"`
	PriceKES          decimal.Decimal `json:"price_kes"`
	PriceTZS          decimal.Decimal `json:"price_tzs"`
	AvailableQuantity int             `json:"available_quantity"`

	Category TicketCategory `json:"category"`
}

// UnitPrice returns the price of a single ticket in c.  The second
// return value is false for an unknown currency.
func (p TicketPrice) UnitPrice(c Currency) (decimal.Decimal, bool) {
	switch c {
	case CurrencyUGX:
		return p.PriceUGX, true
	case CurrencyKES:
		return p.PriceKES, true
	case CurrencyTZS:
		return p.PriceTZS, true
	}
	return decimal.Zero, false
}

// Total computes unit price times quantity rounded to two decimals.
func (p TicketPrice) Total(c Currency, quantity int) (decimal.Decimal, bool) {
	unit, ok := p.UnitPrice(c)
	if !ok {
		return decimal.Zero, false
	}
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2), true
}

// MinPrice is the smallest accepted price in any currency.
var MinPrice = decimal.RequireFromString("0.01")

// ValidPrices reports whether every currency column is at least MinPrice.
func (p TicketPrice) ValidPrices() bool {
	return !p.PriceUGX.LessThan(MinPrice) && !p.PriceKES.LessThan(MinPrice) && !p.PriceTZS.LessThan(MinPrice)
}
