package repository

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository handles persistence for bookings and the event rows
// the capacity ledger locks. It satisfies ledger.Store.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithTx runs fn inside one transaction shared by every method called with
// fn's context.
func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTx(ctx, r.db, fn)
}

// LockEvent reads an event with SELECT … FOR UPDATE.
//
// The row lock is what serialises writers of one event: any other
// transaction that tries to lock the same row waits until this one commits
// or rolls back, so the confirmed total read afterwards cannot change
// underneath the caller. Rows of other events are not affected.
func (r *BookingRepository) LockEvent(ctx context.Context, eventID string) (model.Event, error) {
	var ev model.Event
	row := database.Conn(ctx, r.db).QueryRow(ctx, `
SELECT `+eventColumns+`
FROM events e
LEFT JOIN venues v ON v.id = e.venue_id
WHERE e.id = $1
FOR UPDATE OF e`, eventID)
	if err := scanEvent(row, &ev); err != nil {
		return model.Event{}, translate(err, "lock event", model.ErrEventNotFound)
	}
	return ev, nil
}

// SumConfirmed returns the qty total of the event's confirmed bookings.
func (r *BookingRepository) SumConfirmed(ctx context.Context, eventID string) (int, error) {
	var total int
	err := database.Conn(ctx, r.db).QueryRow(ctx, `
SELECT COALESCE(SUM(qty), 0)::int
FROM bookings
WHERE event_id = $1 AND status = 'confirmed'`, eventID).Scan(&total)
	if err != nil {
		return 0, translate(err, "sum confirmed", nil)
	}
	return total, nil
}

// Availability reads an event and its confirmed total in a single statement,
// so both come from the same snapshot.
func (r *BookingRepository) Availability(ctx context.Context, eventID string) (model.Event, int, error) {
	var ev model.Event
	var reserved int
	row := database.Conn(ctx, r.db).QueryRow(ctx, `
SELECT `+eventColumns+`, COALESCE(SUM(b.qty), 0)::int
FROM events e
LEFT JOIN venues v ON v.id = e.venue_id
LEFT JOIN bookings b ON b.event_id = e.id AND b.status = 'confirmed'
WHERE e.id = $1
GROUP BY e.id, v.name`, eventID)
	if err := scanEvent(row, &ev, &reserved); err != nil {
		return model.Event{}, 0, translate(err, "availability", model.ErrEventNotFound)
	}
	return ev, reserved, nil
}

// GetBooking reads a booking without locking it.
func (r *BookingRepository) GetBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	return r.getBooking(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, bookingID)
}

// LockBooking reads a booking with SELECT … FOR UPDATE.
func (r *BookingRepository) LockBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	return r.getBooking(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1 FOR UPDATE`, bookingID)
}

func (r *BookingRepository) getBooking(ctx context.Context, sql, bookingID string) (model.Booking, error) {
	var b model.Booking
	if err := scanBooking(database.Conn(ctx, r.db).QueryRow(ctx, sql, bookingID), &b); err != nil {
		return model.Booking{}, translate(err, "get booking", model.ErrBookingNotFound)
	}
	return b, nil
}

// InsertBooking writes a new booking row.
func (r *BookingRepository) InsertBooking(ctx context.Context, b model.Booking) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `
INSERT INTO bookings (id, event_id, name, email, phone, notes, qty, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.EventID, b.Name, b.Email, b.Phone, b.Notes, b.Qty, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	return bookingWriteError(err, "insert booking")
}

// SaveBooking writes a booking's mutable fields.
func (r *BookingRepository) SaveBooking(ctx context.Context, b model.Booking) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `
UPDATE bookings SET qty = $2, status = $3, updated_at = $4
WHERE id = $1`, b.ID, b.Qty, b.Status, b.UpdatedAt)
	if err != nil {
		return bookingWriteError(err, "update booking")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookingNotFound
	}
	return nil
}

// DeleteBooking removes a booking row.
func (r *BookingRepository) DeleteBooking(ctx context.Context, bookingID string) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return translate(err, "delete booking", nil)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookingNotFound
	}
	return nil
}

// SaveEventStatus writes the event status and who owns it.
func (r *BookingRepository) SaveEventStatus(ctx context.Context, eventID string, status model.EventStatus, auto bool) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `
UPDATE events SET status = $2, status_auto = $3, updated_at = NOW()
WHERE id = $1`, eventID, status, auto)
	if err != nil {
		return translate(err, "update event status", nil)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

// SaveEvent writes every editable column of an event.
func (r *BookingRepository) SaveEvent(ctx context.Context, ev model.Event) error {
	tags := ev.Tags
	if tags == nil {
		tags = []string{}
	}
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `
UPDATE events SET
	title = $2, summary = $3, description = $4, category = $5, tags = $6,
	venue_id = $7, start_at = $8, end_at = $9, capacity_total = $10,
	status = $11, status_auto = $12, updated_at = $13
WHERE id = $1`,
		ev.ID, ev.Title, ev.Summary, ev.Description, ev.Category, tags,
		ev.VenueID, ev.StartAt, ev.EndAt, ev.CapacityTotal,
		ev.Status, ev.StatusAuto, ev.UpdatedAt,
	)
	if err != nil {
		if database.PgCode(err) == database.CodeForeignKeyViolation {
			return model.ErrVenueNotFound
		}
		return translate(err, "update event", nil)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

// ListAll returns every booking, newest first, joined with its event.
func (r *BookingRepository) ListAll(ctx context.Context) ([]model.BookingListing, error) {
	return r.list(ctx, `
SELECT `+bookingColumns+`, e.title, e.start_at, e.capacity_total, COALESCE(v.name, '')
FROM bookings b
JOIN events e ON e.id = b.event_id
LEFT JOIN venues v ON v.id = e.venue_id
ORDER BY b.created_at DESC, b.id`)
}

// ListByEvent returns the bookings of one event, newest first.
func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]model.BookingListing, error) {
	return r.list(ctx, `
SELECT `+bookingColumns+`, e.title, e.start_at, e.capacity_total, COALESCE(v.name, '')
FROM bookings b
JOIN events e ON e.id = b.event_id
LEFT JOIN venues v ON v.id = e.venue_id
WHERE b.event_id = $1
ORDER BY b.created_at DESC, b.id`, eventID)
}

func (r *BookingRepository) list(ctx context.Context, sql string, args ...any) ([]model.BookingListing, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, "list bookings", nil)
	}
	defer rows.Close()

	out := []model.BookingListing{}
	for rows.Next() {
		var l model.BookingListing
		if err := scanBooking(rows, &l.Booking, &l.EventTitle, &l.EventDate, &l.EventCapacity, &l.VenueName); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate bookings", nil)
	}
	return out, nil
}

func bookingWriteError(err error, op string) error {
	switch database.PgCode(err) {
	case database.CodeUniqueViolation:
		return model.ErrDuplicateBooking
	case database.CodeForeignKeyViolation:
		return model.ErrEventNotFound
	}
	return translate(err, op, nil)
}
