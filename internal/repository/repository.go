// Package repository implements all database queries for the venue booking
// system. It uses pgx directly (no ORM) so every lock and statement is
// visible. Each method runs on the transaction carried by ctx when there is
// one (see database.WithTx) and on the pool otherwise.
package repository

import (
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `e.id, e.title, e.summary, e.description, e.category, e.tags,
	e.venue_id, COALESCE(v.name, ''), e.start_at, e.end_at, e.capacity_total,
	e.status, e.status_auto, e.created_at, e.updated_at`

const bookingColumns = `b.id, b.event_id, b.name, b.email, b.phone, b.notes,
	b.qty, b.status, b.created_at, b.updated_at`

func scanEvent(row pgx.Row, dst *model.Event, extra ...any) error {
	dest := []any{
		&dst.ID, &dst.Title, &dst.Summary, &dst.Description, &dst.Category, &dst.Tags,
		&dst.VenueID, &dst.VenueName, &dst.StartAt, &dst.EndAt, &dst.CapacityTotal,
		&dst.Status, &dst.StatusAuto, &dst.CreatedAt, &dst.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func scanBooking(row pgx.Row, dst *model.Booking, extra ...any) error {
	dest := []any{
		&dst.ID, &dst.EventID, &dst.Name, &dst.Email, &dst.Phone, &dst.Notes,
		&dst.Qty, &dst.Status, &dst.CreatedAt, &dst.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// translate maps driver errors onto the domain taxonomy. notFound is
// returned for pgx.ErrNoRows; op prefixes anything left unclassified.
func translate(err error, op string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	switch database.PgCode(err) {
	case database.CodeInvalidText:
		return model.ErrInvalidID
	case database.CodeSerializationFailure, database.CodeDeadlockDetected:
		return fmt.Errorf("%s: %w: %w", op, model.ErrRetryable, err)
	case database.CodeCheckViolation:
		return &model.ValidationError{Field: database.ConstraintName(err), Reason: "violates check constraint"}
	}
	return fmt.Errorf("%s: %w", op, err)
}
