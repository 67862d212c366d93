package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/iliyamo/tournament-tickets/internal/clock"
	"github.com/iliyamo/tournament-tickets/internal/middleware"
	"github.com/iliyamo/tournament-tickets/internal/model"
	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/service"
	"github.com/iliyamo/tournament-tickets/internal/utils"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

// ----- fakes -----

type fakeMatches struct {
	byID      map[uint64]model.Match
	lastQuery repository.MatchQuery
	page      repository.Page
}

func (f *fakeMatches) GetByID(_ context.Context, id uint64) (model.Match, error) {
	m, ok := f.byID[id]
	if !ok {
		return model.Match{}, repository.ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeMatches) Upcoming(_ context.Context, now time.Time, limit int) ([]model.Match, error) {
	out := []model.Match{}
	for _, m := range f.byID {
		if m.Upcoming(now) && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatches) Search(_ context.Context, q repository.MatchQuery) ([]model.Match, repository.Page, error) {
	f.lastQuery = q
	out := []model.Match{}
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, repository.NewPage(q.Page, int64(len(out)), q.PageSize), nil
}

type fakePrices map[uint64][]model.TicketPrice

func (f fakePrices) ListByMatch(_ context.Context, matchID uint64) ([]model.TicketPrice, error) {
	return f[matchID], nil
}

type fakeTeams []model.Team

func (f fakeTeams) List(context.Context) ([]model.Team, error) { return f, nil }

type fakeVenues []model.Venue

func (f fakeVenues) List(context.Context) ([]model.Venue, error) { return f, nil }

func sampleMatch() model.Match {
	return model.Match{
		ID:         1,
		HomeTeamID: 1,
		AwayTeamID: 2,
		VenueID:    1,
		DateTime:   time.Date(2025, 8, 2, 15, 0, 0, 0, time.UTC),
		Group:      model.GroupA,
		MatchType:  model.StageGroup,
		HomeTeam:   model.Team{ID: 1, Name: "Kenya", Code: "KEN"},
		AwayTeam:   model.Team{ID: 2, Name: "DR Congo", Code: "DRC"},
		Venue:      model.Venue{ID: 1, Name: "Kasarani Stadium", City: "Nairobi", Country: "Kenya", Capacity: 60000},
	}
}

func samplePrices() fakePrices {
	return fakePrices{1: {
		{
			ID: 10, MatchID: 1, CategoryID: 1,
			PriceUGX: decimal.RequireFromString("15000"), PriceKES: decimal.RequireFromString("1000"),
			PriceTZS: decimal.RequireFromString("25000"), AvailableQuantity: 200,
			Category: model.TicketCategory{ID: 1, Name: "VIP", Description: "Best seats"},
		},
		{
			ID: 11, MatchID: 1, CategoryID: 2,
			PriceUGX: decimal.RequireFromString("7500"), PriceKES: decimal.RequireFromString("500.50"),
			PriceTZS: decimal.RequireFromString("12500"), AvailableQuantity: 1000,
			Category: model.TicketCategory{ID: 2, Name: "Regular", Description: "Standard seats"},
		},
	}}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func do(e *echo.Echo, method, target, contentType, body string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bearerFor(t *testing.T, uid uint64, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, uid, string(role), 15, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

// ----- pricing -----

func pricingEcho() *echo.Echo {
	e := newEcho()
	h := &PricingHandler{
		Matches: &fakeMatches{byID: map[uint64]model.Match{1: sampleMatch()}},
		Prices:  samplePrices(),
	}
	e.Any("/api/ticket-prices/", h.TicketPrices)
	return e
}

func TestTicketPricesDefaultCurrency(t *testing.T) {
	rec := do(pricingEcho(), http.MethodPost, "/api/ticket-prices/", echo.MIMEApplicationJSON, `{"match_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, int64(2), gjson.Get(body, "prices.#").Int())
	assert.Equal(t, "VIP", gjson.Get(body, "prices.0.category").String())
	assert.Equal(t, 1000.0, gjson.Get(body, "prices.0.price").Float())
	assert.Equal(t, 500.5, gjson.Get(body, "prices.1.price").Float())
	assert.Equal(t, "KES", gjson.Get(body, "prices.1.currency").String())
	assert.Equal(t, int64(200), gjson.Get(body, "prices.0.available_quantity").Int())
}

func TestTicketPricesOtherCurrency(t *testing.T) {
	rec := do(pricingEcho(), http.MethodPost, "/api/ticket-prices/", echo.MIMEApplicationJSON, `{"match_id":"1","currency":"ugx"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15000.0, gjson.Get(rec.Body.String(), "prices.0.price").Float())
	assert.Equal(t, "UGX", gjson.Get(rec.Body.String(), "prices.0.currency").String())
}

func TestTicketPricesFailures(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		status int
		msg    string
	}{
		{"unknown match", http.MethodPost, `{"match_id":999}`, http.StatusOK, "Match not found"},
		{"missing match id", http.MethodPost, `{}`, http.StatusOK, "Match not found"},
		{"malformed json", http.MethodPost, `{"match_id":`, http.StatusBadRequest, "Invalid request"},
		{"not an object", http.MethodPost, `[1]`, http.StatusBadRequest, "Invalid request"},
		{"bad currency", http.MethodPost, `{"match_id":1,"currency":"USD"}`, http.StatusBadRequest, "Invalid currency"},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed, "Invalid request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(pricingEcho(), tc.method, "/api/ticket-prices/", echo.MIMEApplicationJSON, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tc.msg+`"}`, rec.Body.String())
		})
	}
}

// ----- public browsing -----

func publicEcho() (*echo.Echo, *fakeMatches) {
	e := newEcho()
	fm := &fakeMatches{byID: map[uint64]model.Match{1: sampleMatch()}}
	h := &PublicHandler{
		Matches: fm,
		Prices:  samplePrices(),
		Teams:   fakeTeams{{ID: 2, Name: "DR Congo", Code: "DRC"}, {ID: 1, Name: "Kenya", Code: "KEN"}},
		Venues:  fakeVenues{{ID: 1, Name: "Kasarani Stadium", City: "Nairobi"}},
		Clock:   clock.NewFixed(testNow),
	}
	e.GET("/", h.Home)
	e.GET("/matches/", h.ListMatches)
	e.GET("/match/:id/", h.MatchDetail)
	e.GET("/search/", h.SearchMatches)
	return e, fm
}

func TestHome(t *testing.T) {
	e, _ := publicEcho()
	rec := do(e, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KEN vs DRC - 2025-08-02 15:00", gjson.Get(rec.Body.String(), "upcoming_matches.0.title").String())
	assert.Equal(t, "Group Stage", gjson.Get(rec.Body.String(), "upcoming_matches.0.stage").String())
}

func TestListMatchesPassesFilters(t *testing.T) {
	e, fm := publicEcho()
	rec := do(e, http.MethodGet, "/matches/?group=a&team=KEN&venue=1&page=abc", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, model.GroupA, fm.lastQuery.Group)
	assert.Equal(t, "KEN", fm.lastQuery.TeamCode)
	assert.Equal(t, uint64(1), fm.lastQuery.VenueID)
	assert.Equal(t, 1, fm.lastQuery.Page)
	assert.Equal(t, testNow, fm.lastQuery.Now)

	body := rec.Body.String()
	assert.Equal(t, int64(4), gjson.Get(body, "groups.#").Int())
	assert.Equal(t, "Group A", gjson.Get(body, "groups.0.label").String())
	assert.Equal(t, int64(2), gjson.Get(body, "teams.#").Int())
	assert.Equal(t, "a", gjson.Get(body, "current_group").String())
	assert.Equal(t, int64(1), gjson.Get(body, "pagination.num_pages").Int())
	assert.False(t, gjson.Get(body, "pagination.has_next").Bool())
}

func TestListMatchesNonNumericVenueIsEmpty(t *testing.T) {
	e, _ := publicEcho()
	rec := do(e, http.MethodGet, "/matches/?venue=x", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "matches.#").Int())
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "pagination.page").Int())
}

func TestListingsExpireAtNextKickoff(t *testing.T) {
	e, _ := publicEcho()
	var deadline time.Time
	var set bool
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			deadline, set = middleware.CacheDeadline(c)
			return err
		}
	})

	for _, target := range []string{"/", "/matches/?group=A", "/search/?q=kenya&page=2"} {
		set = false
		rec := do(e, http.MethodGet, target, "", "")
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.True(t, set, target)
		assert.Equal(t, sampleMatch().DateTime, deadline, target)
	}

	set = false
	do(e, http.MethodGet, "/match/1/", "", "")
	assert.False(t, set)
}

func TestMatchDetail(t *testing.T) {
	e, _ := publicEcho()
	rec := do(e, http.MethodGet, "/match/1/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "1000.00", gjson.Get(body, "ticket_prices.0.price_kes").String())
	assert.Equal(t, "500.50", gjson.Get(body, "ticket_prices.1.price_kes").String())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/match/42/", "", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/match/abc/", "", "").Code)
}

func TestSearchEchoesQuery(t *testing.T) {
	e, fm := publicEcho()
	rec := do(e, http.MethodGet, "/search/?q=nairobi&page=3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nairobi", fm.lastQuery.Text)
	assert.Equal(t, "nairobi", gjson.Get(rec.Body.String(), "query").String())
	// page 3 of 1 is clamped to the last page
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "pagination.page").Int())
}

// ----- booking -----

type stubBooker struct {
	got service.BookingRequest
	res service.BookingResult
	err error
}

func (s *stubBooker) Book(_ context.Context, req service.BookingRequest) (service.BookingResult, error) {
	s.got = req
	return s.res, s.err
}

type fakeBookings map[uint64]repository.BookingDetail

func (f fakeBookings) GetDetail(_ context.Context, id uint64) (repository.BookingDetail, error) {
	d, ok := f[id]
	if !ok {
		return repository.BookingDetail{}, repository.ErrBookingNotFound
	}
	return d, nil
}

func (f fakeBookings) ListByUser(_ context.Context, uid uint64) ([]repository.BookingDetail, error) {
	out := []repository.BookingDetail{}
	for _, d := range f {
		if d.UserID != nil && *d.UserID == uid {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeTickets map[uint64][]model.Ticket

func (f fakeTickets) ListByBooking(_ context.Context, id uint64) ([]model.Ticket, error) {
	return f[id], nil
}

func sampleBooking(uid *uint64) model.Booking {
	return model.Booking{
		ID: 7, UserID: uid, TicketPriceID: 11, Quantity: 3,
		TotalAmount:      decimal.RequireFromString("1500"),
		Currency:         model.CurrencyKES,
		PaymentMethod:    model.PaymentMpesaKE,
		PaymentStatus:    model.PaymentPending,
		BookingReference: "ABCDE12345",
		CustomerName:     "Jane Doe",
		CustomerEmail:    "jane@example.com",
		CustomerPhone:    "+254700000000",
		CreatedAt:        testNow,
	}
}

func bookingEcho(b *stubBooker) *echo.Echo {
	owner := uint64(5)
	e := newEcho()
	h := &BookingHandler{
		Matches: &fakeMatches{byID: map[uint64]model.Match{1: sampleMatch()}},
		Prices:  samplePrices(),
		Bookings: fakeBookings{7: {
			Booking:  sampleBooking(&owner),
			Match:    sampleMatch(),
			Category: model.TicketCategory{ID: 2, Name: "Regular"},
		}},
		Tickets: fakeTickets{7: {
			{ID: 1, BookingID: 7, TicketNumber: "AAAAAAAAAAA1"},
			{ID: 2, BookingID: 7, TicketNumber: "AAAAAAAAAAA2"},
			{ID: 3, BookingID: 7, TicketNumber: "AAAAAAAAAAA3"},
		}},
		Service: b,
	}
	e.GET("/book/:match_id/", h.BookingForm)
	e.POST("/book/:match_id/", h.CreateBooking, middleware.OptionalJWT(testSecret))
	e.GET("/booking/:id/confirmation/", h.Confirmation)
	my := e.Group("/v1", middleware.JWTAuth(testSecret))
	my.GET("/my-bookings", h.MyBookings)
	my.GET("/my-bookings/:id", h.MyBooking)
	return e
}

func validForm() url.Values {
	return url.Values{
		"ticket_price":   {"11"},
		"quantity":       {"3"},
		"currency":       {"KES"},
		"payment_method": {"mpesa_ke"},
		"customer_name":  {"Jane Doe"},
		"customer_email": {"jane@example.com"},
		"customer_phone": {"+254700000000"},
	}
}

func TestBookingForm(t *testing.T) {
	rec := do(bookingEcho(&stubBooker{}), http.MethodGet, "/book/1/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, int64(3), gjson.Get(body, "currencies.#").Int())
	assert.Equal(t, int64(9), gjson.Get(body, "payment_methods.#").Int())
	assert.Equal(t, "KES", gjson.Get(body, "default_currency").String())
	assert.Equal(t, int64(10), gjson.Get(body, "max_quantity").Int())
}

func TestCreateBookingFromForm(t *testing.T) {
	b := &stubBooker{res: service.BookingResult{
		Booking:  sampleBooking(nil),
		Tickets:  []model.Ticket{{ID: 1}, {ID: 2}, {ID: 3}},
		Match:    sampleMatch(),
		Category: model.TicketCategory{Name: "Regular"},
	}}
	rec := do(bookingEcho(b), http.MethodPost, "/book/1/", echo.MIMEApplicationForm, validForm().Encode())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := rec.Body.String()
	assert.Equal(t, "Booking created successfully! Reference: ABCDE12345", gjson.Get(body, "message").String())
	assert.Equal(t, "/booking/7/confirmation/", gjson.Get(body, "redirect").String())
	assert.Equal(t, "/booking/7/confirmation/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "1500.00", gjson.Get(body, "booking.total_amount").String())
	assert.Equal(t, int64(3), gjson.Get(body, "tickets.#").Int())

	assert.Equal(t, uint64(1), b.got.MatchID)
	assert.Equal(t, uint64(11), b.got.TicketPriceID)
	assert.Equal(t, 3, b.got.Quantity)
	assert.Nil(t, b.got.UserID)
}

func TestCreateBookingJSONWithAccount(t *testing.T) {
	b := &stubBooker{res: service.BookingResult{Booking: sampleBooking(nil), Match: sampleMatch()}}
	payload := `{"ticket_price":11,"quantity":2,"currency":"UGX","payment_method":"mtn_ug",
		"customer_name":"A","customer_email":"a@example.com","customer_phone":"0700"}`
	rec := do(bookingEcho(b), http.MethodPost, "/book/1/", echo.MIMEApplicationJSON, payload,
		"Authorization", bearerFor(t, 5, model.RoleCustomer))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, b.got.UserID)
	assert.Equal(t, uint64(5), *b.got.UserID)
	assert.Equal(t, "UGX", b.got.Currency)
}

func TestCreateBookingFieldErrors(t *testing.T) {
	form := validForm()
	form.Del("customer_name")
	form.Set("customer_email", "not-an-email")
	b := &stubBooker{}
	rec := do(bookingEcho(b), http.MethodPost, "/book/1/", echo.MIMEApplicationForm, form.Encode())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "validation failed", gjson.Get(body, "error").String())
	assert.Equal(t, "This field is required.", gjson.Get(body, "fields.customer_name").String())
	assert.Equal(t, "Enter a valid email address.", gjson.Get(body, "fields.customer_email").String())
	assert.Zero(t, b.got.MatchID, "service must not be called")
}

func TestCreateBookingServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&service.ValidationError{Fields: map[string]string{"quantity": "Only 5 tickets available for this category."}}, http.StatusBadRequest},
		{repository.ErrMatchNotFound, http.StatusNotFound},
		{service.ErrMatchClosed, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := do(bookingEcho(&stubBooker{err: tc.err}), http.MethodPost, "/book/1/", echo.MIMEApplicationForm, validForm().Encode())
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}

	rec := do(bookingEcho(&stubBooker{err: cases[0].err}), http.MethodPost, "/book/1/", echo.MIMEApplicationForm, validForm().Encode())
	assert.Equal(t, "Only 5 tickets available for this category.", gjson.Get(rec.Body.String(), "fields.quantity").String())
	rec = do(bookingEcho(&stubBooker{err: context.DeadlineExceeded}), http.MethodPost, "/book/1/", echo.MIMEApplicationForm, validForm().Encode())
	assert.JSONEq(t, `{"error":"database error"}`, rec.Body.String())
}

func TestConfirmation(t *testing.T) {
	e := bookingEcho(&stubBooker{})
	rec := do(e, http.MethodGet, "/booking/7/confirmation/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "ABCDE12345", gjson.Get(body, "booking.booking_reference").String())
	assert.Equal(t, "M-Pesa (Kenya)", gjson.Get(body, "booking.payment_method_label").String())
	assert.Equal(t, int64(3), gjson.Get(body, "tickets.#").Int())

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/booking/8/confirmation/", "", "").Code)
}

func TestMyBookingsOwnership(t *testing.T) {
	e := bookingEcho(&stubBooker{})

	rec := do(e, http.MethodGet, "/v1/my-bookings", "", "", "Authorization", bearerFor(t, 5, model.RoleCustomer))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "items.#").Int())

	rec = do(e, http.MethodGet, "/v1/my-bookings/7", "", "", "Authorization", bearerFor(t, 5, model.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/v1/my-bookings/7", "", "", "Authorization", bearerFor(t, 6, model.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodGet, "/v1/my-bookings", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ----- admin -----

type fakeBackOffice struct {
	status model.PaymentStatus
	err    error
}

func (f *fakeBackOffice) UpdatePaymentStatus(_ context.Context, id uint64, next model.PaymentStatus) (model.Booking, error) {
	if f.err != nil {
		return model.Booking{}, f.err
	}
	f.status = next
	b := sampleBooking(nil)
	b.ID = id
	b.PaymentStatus = next
	return b, nil
}

func (f *fakeBackOffice) CheckIn(_ context.Context, number string) (model.Ticket, error) {
	if f.err != nil {
		return model.Ticket{}, f.err
	}
	return model.Ticket{ID: 1, BookingID: 7, TicketNumber: number, IsUsed: true}, nil
}

func (f *fakeBackOffice) CompleteMatch(context.Context, uint64) error { return f.err }

type fakeSearch struct{ q repository.BookingQuery }

func (f *fakeSearch) Search(_ context.Context, q repository.BookingQuery) ([]repository.BookingDetail, repository.Page, error) {
	f.q = q
	d := repository.BookingDetail{Booking: sampleBooking(nil), Match: sampleMatch()}
	return []repository.BookingDetail{d}, repository.NewPage(q.Page, 1, repository.BookingPageSize), nil
}

func adminEcho(bo *fakeBackOffice, fs *fakeSearch) *echo.Echo {
	e := newEcho()
	h := &AdminHandler{Bookings: fs, Admin: bo}
	g := e.Group("/v1/admin", middleware.JWTAuth(testSecret), middleware.RequireRole(model.RoleAdmin))
	g.GET("/bookings", h.ListBookings)
	g.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	g.POST("/tickets/:number/check-in", h.CheckIn)
	g.PATCH("/matches/:id/complete", h.CompleteMatch)
	return e
}

func TestAdminListBookings(t *testing.T) {
	fs := &fakeSearch{}
	e := adminEcho(&fakeBackOffice{}, fs)
	admin := bearerFor(t, 1, model.RoleAdmin)

	rec := do(e, http.MethodGet, "/v1/admin/bookings?status=Pending&currency=kes&q=jane", "", "", "Authorization", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentPending, fs.q.Status)
	assert.Equal(t, model.CurrencyKES, fs.q.Currency)
	assert.Equal(t, "jane", fs.q.Text)
	assert.Equal(t, int64(1), gjson.Get(rec.Body.String(), "items.#").Int())

	rec = do(e, http.MethodGet, "/v1/admin/bookings?status=refunded", "", "", "Authorization", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "fields.status").Exists())

	rec = do(e, http.MethodGet, "/v1/admin/bookings", "", "", "Authorization", bearerFor(t, 2, model.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUpdateStatus(t *testing.T) {
	bo := &fakeBackOffice{}
	admin := bearerFor(t, 1, model.RoleAdmin)

	rec := do(adminEcho(bo, &fakeSearch{}), http.MethodPatch, "/v1/admin/bookings/7/status", echo.MIMEApplicationJSON, `{"status":"completed"}`, "Authorization", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.PaymentCompleted, bo.status)
	assert.Equal(t, "completed", gjson.Get(rec.Body.String(), "payment_status").String())

	rec = do(adminEcho(bo, &fakeSearch{}), http.MethodPatch, "/v1/admin/bookings/7/status", echo.MIMEApplicationJSON, `{"status":"bogus"}`, "Authorization", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(adminEcho(bo, &fakeSearch{}), http.MethodPatch, "/v1/admin/bookings/7/status", echo.MIMEApplicationJSON, `{}`, "Authorization", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This field is required.", gjson.Get(rec.Body.String(), "fields.status").String())

	bo.err = service.ErrInvalidStatusTransition
	rec = do(adminEcho(bo, &fakeSearch{}), http.MethodPatch, "/v1/admin/bookings/7/status", echo.MIMEApplicationJSON, `{"status":"pending"}`, "Authorization", admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCheckIn(t *testing.T) {
	admin := bearerFor(t, 1, model.RoleAdmin)

	rec := do(adminEcho(&fakeBackOffice{}, &fakeSearch{}), http.MethodPost, "/v1/admin/tickets/abcdefabcdef/check-in", "", "", "Authorization", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ABCDEFABCDEF", gjson.Get(rec.Body.String(), "ticket_number").String())
	assert.True(t, gjson.Get(rec.Body.String(), "is_used").Bool())

	for _, err := range []error{service.ErrTicketAlreadyUsed, service.ErrBookingNotPaid} {
		rec = do(adminEcho(&fakeBackOffice{err: err}, &fakeSearch{}), http.MethodPost, "/v1/admin/tickets/X/check-in", "", "", "Authorization", admin)
		assert.Equal(t, http.StatusConflict, rec.Code)
	}
	rec = do(adminEcho(&fakeBackOffice{err: repository.ErrTicketNotFound}, &fakeSearch{}), http.MethodPost, "/v1/admin/tickets/X/check-in", "", "", "Authorization", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCompleteMatch(t *testing.T) {
	admin := bearerFor(t, 1, model.RoleAdmin)
	rec := do(adminEcho(&fakeBackOffice{}, &fakeSearch{}), http.MethodPatch, "/v1/admin/matches/1/complete", "", "", "Authorization", admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(adminEcho(&fakeBackOffice{err: repository.ErrMatchNotFound}, &fakeSearch{}), http.MethodPatch, "/v1/admin/matches/9/complete", "", "", "Authorization", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
