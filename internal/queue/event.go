// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that records them.
package queue

// BookingCreatedQueue is the durable queue booking events are sent to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published once a booking transaction commits.
// It carries enough to log or notify without reading the database.
type BookingCreatedEvent struct {
	BookingID     uint64   `json:"booking_id"`
	Reference     string   `json:"booking_reference"`
	UserID        *uint64  `json:"user_id,omitempty"`
	MatchID       uint64   `json:"match_id"`
	Match         string   `json:"match"`
	Venue         string   `json:"venue"`
	Category      string   `json:"category"`
	Quantity      int      `json:"quantity"`
	TicketNumbers []string `json:"ticket_numbers"`
	TotalAmount   string   `json:"total_amount"`
	Currency      string   `json:"currency"`
	PaymentMethod string   `json:"payment_method"`
	CustomerEmail string   `json:"customer_email"`
	CreatedAt     string   `json:"created_at"`
}
