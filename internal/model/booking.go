package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the mobile money or card scheme chosen at checkout.
type PaymentMethod string

const (
	PaymentMpesaKE    PaymentMethod = "mpesa_ke"
	PaymentAirtelKE   PaymentMethod = "airtel_ke"
	PaymentMTNUG      PaymentMethod = "mtn_ug"
	PaymentAirtelUG   PaymentMethod = "airtel_ug"
	PaymentMpesaTZ    PaymentMethod = "mpesa_tz"
	PaymentTigoTZ     PaymentMethod = "tigo_tz"
	PaymentVisa       PaymentMethod = "visa"
	PaymentMastercard PaymentMethod = "mastercard"
	PaymentAmex       PaymentMethod = "amex"
)

// PaymentMethods lists methods in form order.
var PaymentMethods = []PaymentMethod{
	PaymentMpesaKE, PaymentAirtelKE, PaymentMTNUG, PaymentAirtelUG,
	PaymentMpesaTZ, PaymentTigoTZ, PaymentVisa, PaymentMastercard, PaymentAmex,
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMpesaKE:    "M-Pesa (Kenya)",
	PaymentAirtelKE:   "Airtel Money (Kenya)",
	PaymentMTNUG:      "MTN Mobile Money (Uganda)",
	PaymentAirtelUG:   "Airtel Money (Uganda)",
	PaymentMpesaTZ:    "M-Pesa (Tanzania)",
	PaymentTigoTZ:     "Tigo Pesa (Tanzania)",
	PaymentVisa:       "Visa Card",
	PaymentMastercard: "Mastercard",
	PaymentAmex:       "American Express",
}

// ParsePaymentMethod normalises s and reports whether it is a known method.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	_, ok := paymentMethodLabels[m]
	return m, ok
}

func (m PaymentMethod) Label() string { return paymentMethodLabels[m] }

// PaymentStatus tracks the lifecycle of a booking's payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentCompleted, PaymentFailed, PaymentCancelled},
	PaymentFailed:  {PaymentPending, PaymentCancelled},
}

// ParsePaymentStatus normalises s and reports whether it is a known status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	st := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, v := range paymentTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// ReleasesStock reports whether entering s returns the booked tickets to
// the category's inventory.
func (s PaymentStatus) ReleasesStock() bool {
	return s == PaymentCancelled || s == PaymentFailed
}

// Booking is one purchase of Quantity tickets from a single price row.
// TotalAmount is fixed when the booking is created.
type Booking struct {
	ID               uint64          `json:"id"`
	UserID           *uint64         `json:"user_id,omitempty"`
	TicketPriceID    uint64          `json:"ticket_price_id"`
	Quantity         int             `json:"quantity"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         Currency        `json:"currency"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	BookingReference string          `json:"booking_reference"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerPhone    string          `json:"customer_phone"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (b Booking) String() string {
	return fmt.Sprintf("Booking %s - %s", b.BookingReference, b.CustomerName)
}

// Ticket is a single admission generated for one unit of a booking.
type Ticket struct {
	ID           uint64    `json:"id"`
	BookingID    uint64    `json:"booking_id"`
	TicketNumber string    `json:"ticket_number"`
	QRCode       *string   `json:"qr_code,omitempty"`
	IsUsed       bool      `json:"is_used"`
	CreatedAt    time.Time `json:"created_at"`
}

func (t Ticket) String() string {
	return "Ticket " + t.TicketNumber
}
