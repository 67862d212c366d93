package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/tournament-tickets/internal/model"
)

// BookingRepo persists bookings.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with the match and category it was
// bought for.
type BookingDetail struct {
	model.Booking
	Match    model.Match          `json:"match"`
	Category model.TicketCategory `json:"category"`
}

const bookingColumns = `b.id, b.user_id, b.ticket_price_id, b.quantity, b.total_amount, b.currency, b.payment_method,
		b.payment_status, b.booking_reference, b.customer_name, b.customer_email, b.customer_phone,
		b.created_at, b.updated_at`

const bookingDetailSelect = `SELECT ` + bookingColumns + `,
		c.id, c.name, c.description,
		m.id, m.home_team_id, m.away_team_id, m.venue_id, m.date_time, m.group_name, m.match_type, m.is_completed,
		home.name, home.code, home.flag_image,
		away.name, away.code, away.flag_image,
		v.name, v.city, v.country, v.capacity
	FROM bookings b
	JOIN ticket_prices tp    ON tp.id = b.ticket_price_id
	JOIN ticket_categories c ON c.id = tp.category_id
	JOIN matches m           ON m.id = tp.match_id
	JOIN teams home          ON home.id = m.home_team_id
	JOIN teams away          ON away.id = m.away_team_id
	JOIN venues v            ON v.id = m.venue_id`

func bookingDest(b *model.Booking, userID *sql.NullInt64, currency, method, status *string) []any {
	return []any{
		&b.ID, userID, &b.TicketPriceID, &b.Quantity, &b.TotalAmount, currency, method,
		status, &b.BookingReference, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.CreatedAt, &b.UpdatedAt,
	}
}

func finishBooking(b *model.Booking, userID sql.NullInt64, currency, method, status string) {
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	b.Currency = model.Currency(currency)
	b.PaymentMethod = model.PaymentMethod(method)
	b.PaymentStatus = model.PaymentStatus(status)
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
}

func scanBooking(s rowScanner) (model.Booking, error) {
	var (
		b                        model.Booking
		userID                   sql.NullInt64
		currency, method, status string
	)
	if err := s.Scan(bookingDest(&b, &userID, &currency, &method, &status)...); err != nil {
		return model.Booking{}, err
	}
	finishBooking(&b, userID, currency, method, status)
	return b, nil
}

func scanBookingDetail(s rowScanner) (BookingDetail, error) {
	var (
		d                        BookingDetail
		userID                   sql.NullInt64
		currency, method, status string
		group, stage             string
		homeFlag, awayFlag       sql.NullString
	)
	dest := bookingDest(&d.Booking, &userID, &currency, &method, &status)
	m := &d.Match
	dest = append(dest,
		&d.Category.ID, &d.Category.Name, &d.Category.Description,
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.DateTime, &group, &stage, &m.IsCompleted,
		&m.HomeTeam.Name, &m.HomeTeam.Code, &homeFlag,
		&m.AwayTeam.Name, &m.AwayTeam.Code, &awayFlag,
		&m.Venue.Name, &m.Venue.City, &m.Venue.Country, &m.Venue.Capacity,
	)
	if err := s.Scan(dest...); err != nil {
		return BookingDetail{}, err
	}
	finishBooking(&d.Booking, userID, currency, method, status)
	m.Group = model.Group(group)
	m.MatchType = model.Stage(stage)
	m.HomeTeam.ID, m.AwayTeam.ID, m.Venue.ID = m.HomeTeamID, m.AwayTeamID, m.VenueID
	if homeFlag.Valid {
		m.HomeTeam.FlagImage = &homeFlag.String
	}
	if awayFlag.Valid {
		m.AwayTeam.FlagImage = &awayFlag.String
	}
	m.DateTime = m.DateTime.UTC()
	return d, nil
}

// Create inserts b and fills in its id.  A collision on booking_reference
// returns ErrDuplicateReference so the caller can draw a new one.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO bookings (user_id, ticket_price_id, quantity, total_amount, currency, payment_method,
			payment_status, booking_reference, customer_name, customer_email, customer_phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.TicketPriceID, b.Quantity, b.TotalAmount, string(b.Currency), string(b.PaymentMethod),
		string(b.PaymentStatus), b.BookingReference, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateReference
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetForUpdate locks the booking row for a status change.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings b WHERE b.id = ? FOR UPDATE", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// GetDetail returns the booking with its match and category.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (BookingDetail, error) {
	d, err := scanBookingDetail(conn(ctx, r.db).QueryRowContext(ctx, bookingDetailSelect+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// ListByUser returns the bookings owned by userID, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		bookingDetailSelect+" WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingDetails(rows)
}

func collectBookingDetails(rows *sql.Rows) ([]BookingDetail, error) {
	out := []BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus sets payment_status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE bookings SET payment_status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingPageSize is the page size of the back office booking list.
const BookingPageSize = 10

// BookingQuery filters the back office booking list.  Text matches the
// reference, customer name or customer email.
type BookingQuery struct {
	Reference string
	Status    model.PaymentStatus
	Currency  model.Currency
	Text      string
	Page      int
}

// Search lists bookings newest first for the back office.
func (r *BookingRepo) Search(ctx context.Context, q BookingQuery) ([]BookingDetail, Page, error) {
	where := []string{}
	args := []any{}
	if ref := strings.ToUpper(strings.TrimSpace(q.Reference)); ref != "" {
		where = append(where, "b.booking_reference = ?")
		args = append(args, ref)
	}
	if q.Status != "" {
		where = append(where, "b.payment_status = ?")
		args = append(args, string(q.Status))
	}
	if q.Currency != "" {
		where = append(where, "b.currency = ?")
		args = append(args, string(q.Currency))
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		like := containsPattern(text)
		where = append(where, "(LOWER(b.booking_reference) LIKE ? OR LOWER(b.customer_name) LIKE ? OR LOWER(b.customer_email) LIKE ?)")
		args = append(args, like, like, like)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := conn(ctx, r.db).QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings b WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, Page{}, err
	}
	page := NewPage(q.Page, total, BookingPageSize)
	if total == 0 {
		return []BookingDetail{}, page, nil
	}

	argsData := append(append([]any{}, args...), page.Size, page.Offset())
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		bookingDetailSelect+" WHERE "+cond+" ORDER BY b.created_at DESC, b.id DESC LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, Page{}, err
	}
	defer rows.Close()
	items, err := collectBookingDetails(rows)
	if err != nil {
		return nil, Page{}, err
	}
	return items, page, nil
}
