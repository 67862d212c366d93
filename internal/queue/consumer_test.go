package queue

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:     7,
		Reference:     "ABCDE12345",
		Match:         "KEN vs DRC - 2025-08-03 15:00",
		Venue:         "Nyayo National Stadium, Nairobi",
		Category:      "Regular",
		Quantity:      2,
		TicketNumbers: []string{"AAAAAAAAAAAA", "BBBBBBBBBBBB"},
		TotalAmount:   "1000.00",
		Currency:      "KES",
		PaymentMethod: "mpesa_ke",
		CreatedAt:     "2025-08-01T09:00:00Z",
	}
}

func TestHandleBookingCreatedWritesLine(t *testing.T) {
	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, HandleBookingCreated(&buf, body))
	assert.Equal(t,
		"[2025-08-01T09:00:00Z] Booking created | booking_id=7 | reference=ABCDE12345 | match=\"KEN vs DRC - 2025-08-03 15:00\" | venue=\"Nyayo National Stadium, Nairobi\" | category=\"Regular\" | quantity=2 | total=1000.00 KES | payment=mpesa_ke | tickets=[AAAAAAAAAAAA,BBBBBBBBBBBB]\n",
		buf.String())
}

func TestHandleBookingCreatedRejectsBadMessages(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, HandleBookingCreated(&buf, []byte("{not json")))
	assert.Error(t, HandleBookingCreated(&buf, []byte(`{"booking_id":0}`)))
	assert.Zero(t, buf.Len())
}

func TestBookingLogRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	w := NewBookingLog(path)

	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	require.NoError(t, HandleBookingCreated(w, body))
	require.NoError(t, HandleBookingCreated(w, body))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("reference=ABCDE12345")))
}
