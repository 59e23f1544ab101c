package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/ledger"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// EventStore is the event persistence the service needs.
type EventStore interface {
	Create(ctx context.Context, ev model.Event) error
	GetByID(ctx context.Context, id string) (model.EventDetail, error)
	List(ctx context.Context, f model.EventFilter) (model.EventPage, error)
	Delete(ctx context.Context, id string) error
}

// EventReconciler applies edits to an event under its capacity lock.
type EventReconciler interface {
	ReconcileEvent(ctx context.Context, eventID string, edit func(ev *model.Event) error) (model.Event, error)
}

// EventService orchestrates event-related business operations.
type EventService struct {
	events EventStore
	ledger EventReconciler
	opts   options
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, reconciler EventReconciler, opts ...Option) *EventService {
	return &EventService{events: events, ledger: reconciler, opts: buildOptions(opts)}
}

// CreateEvent validates the request, fills defaults and stores the event.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.EventDetail, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.VenueID != nil && strings.TrimSpace(*req.VenueID) == "" {
		req.VenueID = nil
	}
	if err := validateStruct(req); err != nil {
		return model.EventDetail{}, err
	}

	status := req.Status
	if status == "" {
		status = model.EventScheduled
	}
	if !status.Valid() {
		return model.EventDetail{}, &model.ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}

	now := s.opts.now()
	ev := model.Event{
		ID:            s.opts.newID(),
		Title:         req.Title,
		Summary:       req.Summary,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          req.Tags,
		VenueID:       req.VenueID,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		CapacityTotal: req.CapacityTotal,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	ev = ledger.Derive(ev, 0)

	if err := s.events.Create(ctx, ev); err != nil {
		return model.EventDetail{}, err
	}
	return s.events.GetByID(ctx, ev.ID)
}

// GetEvent returns a single event with its live capacity figures.
func (s *EventService) GetEvent(ctx context.Context, id string) (model.EventDetail, error) {
	if err := required("id", id); err != nil {
		return model.EventDetail{}, err
	}
	return s.events.GetByID(ctx, id)
}

// ListEvents returns one page of events. Page defaults to 1 and page size to
// 50, capped at 500.
func (s *EventService) ListEvents(ctx context.Context, f model.EventFilter) (model.EventPage, error) {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)
	if f.Status != "" && !f.Status.Valid() {
		return model.EventPage{}, &model.ValidationError{Field: "status", Reason: "unknown status " + string(f.Status)}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PageSize < 1:
		f.PageSize = defaultPageSize
	case f.PageSize > maxPageSize:
		f.PageSize = maxPageSize
	}
	return s.events.List(ctx, f)
}

// UpdateEvent applies patch while the ledger holds the event's lock, so
// capacity and status stay consistent with concurrent bookings.
func (s *EventService) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.EventDetail, error) {
	if err := required("id", id); err != nil {
		return model.EventDetail{}, err
	}
	if patch.Empty() {
		return model.EventDetail{}, model.ErrEmptyPatch
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := validateStruct(patch); err != nil {
		return model.EventDetail{}, err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.EventDetail{}, &model.ValidationError{Field: "status", Reason: "unknown status " + string(*patch.Status)}
	}

	_, err := s.ledger.ReconcileEvent(ctx, id, func(ev *model.Event) error {
		patch.Apply(ev)
		if !ev.StartAt.Before(ev.EndAt) {
			return &model.ValidationError{Field: "end_at", Reason: "must be after start_at"}
		}
		return nil
	})
	if err != nil {
		return model.EventDetail{}, err
	}
	return s.events.GetByID(ctx, id)
}

// DeleteEvent removes an event together with its bookings.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}
