package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/database"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles persistence for events outside the ledger's
// locked paths.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a fully populated event.
func (r *EventRepository) Create(ctx context.Context, ev model.Event) error {
	tags := ev.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := database.Conn(ctx, r.db).Exec(ctx, `
INSERT INTO events
	(id, title, summary, description, category, tags, venue_id, start_at, end_at,
	 capacity_total, status, status_auto, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		ev.ID, ev.Title, ev.Summary, ev.Description, ev.Category, tags, ev.VenueID,
		ev.StartAt, ev.EndAt, ev.CapacityTotal, ev.Status, ev.StatusAuto, ev.CreatedAt, ev.UpdatedAt,
	)
	if database.PgCode(err) == database.CodeForeignKeyViolation {
		return model.ErrVenueNotFound
	}
	return translate(err, "insert event", nil)
}

// GetByID returns an event with its live reserved and available figures.
func (r *EventRepository) GetByID(ctx context.Context, id string) (model.EventDetail, error) {
	var d model.EventDetail
	row := database.Conn(ctx, r.db).QueryRow(ctx, `
SELECT `+eventColumns+`,
	(SELECT COALESCE(SUM(b.qty), 0) FROM bookings b
	 WHERE b.event_id = e.id AND b.status = 'confirmed')
FROM events e
LEFT JOIN venues v ON v.id = e.venue_id
WHERE e.id = $1`, id)
	if err := scanEvent(row, &d.Event, &d.ReservedQty); err != nil {
		return model.EventDetail{}, translate(err, "get event", model.ErrEventNotFound)
	}
	d.AvailableQty = model.Available(d.CapacityTotal, d.ReservedQty)
	return d, nil
}

// List returns one page of events matching f, ordered by start time.
func (r *EventRepository) List(ctx context.Context, f model.EventFilter) (model.EventPage, error) {
	var where []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("e.status = $%d", f.Status)
	}
	if f.Category != "" {
		add("e.category = $%d", f.Category)
	}
	if f.VenueID != "" {
		add("e.venue_id = $%d", f.VenueID)
	}
	if f.Query != "" {
		add("(e.title ILIKE $%[1]d OR e.summary ILIKE $%[1]d OR e.description ILIKE $%[1]d)", "%"+f.Query+"%")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	q := database.Conn(ctx, r.db)
	page := model.EventPage{Items: []model.Event{}, Page: f.Page, PageSize: f.PageSize}
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM events e `+whereSQL, args...).Scan(&page.Total); err != nil {
		return model.EventPage{}, translate(err, "count events", nil)
	}

	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := q.Query(ctx, fmt.Sprintf(`
SELECT `+eventColumns+`
FROM events e
LEFT JOIN venues v ON v.id = e.venue_id
%s
ORDER BY e.start_at ASC, e.id ASC
LIMIT $%d OFFSET $%d`, whereSQL, len(args)-1, len(args)), args...)
	if err != nil {
		return model.EventPage{}, translate(err, "list events", nil)
	}
	defer rows.Close()

	for rows.Next() {
		var ev model.Event
		if err := scanEvent(rows, &ev); err != nil {
			return model.EventPage{}, fmt.Errorf("scan event: %w", err)
		}
		page.Items = append(page.Items, ev)
	}
	if err := rows.Err(); err != nil {
		return model.EventPage{}, translate(err, "iterate events", nil)
	}
	return page, nil
}

// Delete removes an event and, by cascade, its bookings.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete event", nil)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
