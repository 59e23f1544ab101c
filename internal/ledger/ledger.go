// Package ledger enforces the booking capacity invariant: for every event,
// the quantities of its confirmed bookings never add up to more than its
// capacity_total.
//
// All correctness comes from the store's transactions. Every operation that
// writes bookings of an event first locks that event's row and holds the
// lock until commit or rollback, so reservations, cancellations and
// deletions against one event run one after another while different events
// proceed independently. Locks are always taken event first, booking
// second.
//
// The ledger also owns the scheduled <-> soldout transition. It only
// reverts a soldout status it wrote itself; statuses set by an explicit
// edit are never overwritten.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/google/uuid"
)

// Store is the transactional storage the ledger runs on.
type Store interface {
	// WithTx runs fn in one transaction; fn's context carries it.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockEvent reads an event and locks its row until the transaction ends.
	LockEvent(ctx context.Context, eventID string) (model.Event, error)
	// SumConfirmed returns the qty total of the event's confirmed bookings.
	SumConfirmed(ctx context.Context, eventID string) (int, error)
	// Availability reads an event and its confirmed total in one snapshot.
	Availability(ctx context.Context, eventID string) (model.Event, int, error)
	GetBooking(ctx context.Context, bookingID string) (model.Booking, error)
	LockBooking(ctx context.Context, bookingID string) (model.Booking, error)
	InsertBooking(ctx context.Context, b model.Booking) error
	SaveBooking(ctx context.Context, b model.Booking) error
	DeleteBooking(ctx context.Context, bookingID string) error
	SaveEventStatus(ctx context.Context, eventID string, status model.EventStatus, auto bool) error
	SaveEvent(ctx context.Context, ev model.Event) error
}

// Ledger is the capacity ledger.
type Ledger struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option customises a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator overrides booking id generation.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// New constructs a Ledger over store.
func New(store Store, logger *slog.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ReserveInput describes a reservation request.
type ReserveInput struct {
	EventID string
	Qty     int
	Name    string
	Email   string
	Phone   string
	Notes   string
}

// Reserve books in.Qty units of the event for the requester. The booking is
// created confirmed or not at all.
func (l *Ledger) Reserve(ctx context.Context, in ReserveInput) (model.Booking, error) {
	if in.Qty < 1 {
		return model.Booking{}, model.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.EventID) == "" {
		return model.Booking{}, &model.ValidationError{Field: "event_id", Reason: "is required"}
	}

	var out model.Booking
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := l.store.LockEvent(ctx, in.EventID)
		if err != nil {
			return err
		}
		if !bookable(ev) {
			return model.ErrEventClosed
		}

		reserved, err := l.store.SumConfirmed(ctx, ev.ID)
		if err != nil {
			return err
		}
		available := model.Available(ev.CapacityTotal, reserved)
		if available < in.Qty {
			return &model.CapacityError{Available: available}
		}

		now := l.now()
		b := model.Booking{
			ID:        l.newID(),
			EventID:   ev.ID,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Notes:     in.Notes,
			Qty:       in.Qty,
			Status:    model.BookingConfirmed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := l.store.InsertBooking(ctx, b); err != nil {
			return err
		}
		if err := l.settle(ctx, ev, reserved+in.Qty); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// Availability reports the live capacity figures of an event.
func (l *Ledger) Availability(ctx context.Context, eventID string) (model.Availability, error) {
	if strings.TrimSpace(eventID) == "" {
		return model.Availability{}, &model.ValidationError{Field: "event_id", Reason: "is required"}
	}
	ev, reserved, err := l.store.Availability(ctx, eventID)
	if err != nil {
		return model.Availability{}, err
	}
	return model.NewAvailability(ev, reserved), nil
}

// SetStatus moves a booking to status, releasing or re-taking its capacity.
func (l *Ledger) SetStatus(ctx context.Context, bookingID string, status model.BookingStatus) (model.Booking, error) {
	return l.Update(ctx, bookingID, model.BookingPatch{Status: &status})
}

// Update changes a booking's status and/or qty. Any change that takes more
// capacity (re-confirming, growing qty) is checked exactly like a new
// reservation; releasing capacity is always allowed.
func (l *Ledger) Update(ctx context.Context, bookingID string, patch model.BookingPatch) (model.Booking, error) {
	if patch.Empty() {
		return model.Booking{}, model.ErrEmptyPatch
	}
	if patch.Qty != nil && *patch.Qty < 1 {
		return model.Booking{}, model.ErrInvalidQuantity
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Booking{}, &model.ValidationError{Field: "status", Reason: "must be confirmed or cancelled"}
	}
	if strings.TrimSpace(bookingID) == "" {
		return model.Booking{}, &model.ValidationError{Field: "id", Reason: "is required"}
	}

	var out model.Booking
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		ev, cur, err := l.lockBooking(ctx, bookingID)
		if err != nil {
			return err
		}

		next := cur
		if patch.Status != nil {
			next.Status = *patch.Status
		}
		if patch.Qty != nil {
			next.Qty = *patch.Qty
		}

		held := heldQty(cur)
		need := heldQty(next) - held
		if need > 0 {
			if !bookable(ev) {
				return model.ErrEventClosed
			}
			reserved, err := l.store.SumConfirmed(ctx, ev.ID)
			if err != nil {
				return err
			}
			if free := model.Available(ev.CapacityTotal, reserved); need > free {
				return &model.CapacityError{Available: free}
			}
		}

		next.UpdatedAt = l.now()
		if err := l.store.SaveBooking(ctx, next); err != nil {
			return err
		}
		if need != 0 {
			// Recomputed after the write so the release or take is visible.
			reserved, err := l.store.SumConfirmed(ctx, ev.ID)
			if err != nil {
				return err
			}
			if err := l.settle(ctx, ev, reserved); err != nil {
				return err
			}
		}
		out = next
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// Remove deletes a booking and returns it as it was. Deleting a confirmed
// booking releases its qty; deleting a cancelled one leaves the event alone.
func (l *Ledger) Remove(ctx context.Context, bookingID string) (model.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return model.Booking{}, &model.ValidationError{Field: "id", Reason: "is required"}
	}

	var out model.Booking
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		ev, cur, err := l.lockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := l.store.DeleteBooking(ctx, cur.ID); err != nil {
			return err
		}
		if cur.Status == model.BookingConfirmed {
			reserved, err := l.store.SumConfirmed(ctx, ev.ID)
			if err != nil {
				return err
			}
			if err := l.settle(ctx, ev, reserved); err != nil {
				return err
			}
		}
		out = cur
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return out, nil
}

// ReconcileEvent applies an edit to an event while holding its lock.
// edit receives a copy it may modify; the result must keep capacity_total at
// or above the reserved total. The status is re-derived before saving.
func (l *Ledger) ReconcileEvent(ctx context.Context, eventID string, edit func(ev *model.Event) error) (model.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return model.Event{}, &model.ValidationError{Field: "id", Reason: "is required"}
	}

	var out model.Event
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := l.store.LockEvent(ctx, eventID)
		if err != nil {
			return err
		}
		reserved, err := l.store.SumConfirmed(ctx, ev.ID)
		if err != nil {
			return err
		}

		next := ev
		next.Tags = append([]string(nil), ev.Tags...)
		if err := edit(&next); err != nil {
			return err
		}
		next.ID = ev.ID
		if next.CapacityTotal < reserved {
			return model.ErrCapacityBelowReserved
		}
		if status, auto, changed := deriveStatus(next, reserved); changed {
			l.logTransition(ev.ID, next.Status, status)
			next.Status, next.StatusAuto = status, auto
		}
		next.UpdatedAt = l.now()
		if err := l.store.SaveEvent(ctx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return model.Event{}, err
	}
	return out, nil
}

// lockBooking locks the booking's event and then the booking itself.
func (l *Ledger) lockBooking(ctx context.Context, bookingID string) (model.Event, model.Booking, error) {
	peek, err := l.store.GetBooking(ctx, bookingID)
	if err != nil {
		return model.Event{}, model.Booking{}, err
	}
	ev, err := l.store.LockEvent(ctx, peek.EventID)
	if err != nil {
		return model.Event{}, model.Booking{}, err
	}
	cur, err := l.store.LockBooking(ctx, bookingID)
	if err != nil {
		return model.Event{}, model.Booking{}, err
	}
	return ev, cur, nil
}

// settle writes the status implied by reserved, if it differs.
func (l *Ledger) settle(ctx context.Context, ev model.Event, reserved int) error {
	status, auto, changed := deriveStatus(ev, reserved)
	if !changed {
		return nil
	}
	if err := l.store.SaveEventStatus(ctx, ev.ID, status, auto); err != nil {
		return err
	}
	l.logTransition(ev.ID, ev.Status, status)
	return nil
}

func (l *Ledger) logTransition(eventID string, from, to model.EventStatus) {
	msg := "event reopened"
	if to == model.EventSoldOut {
		msg = "event soldout"
	}
	l.log.Debug(msg, "event_id", eventID, "from", from, "to", to)
}

// Derive returns ev with the status implied by reserved units taken. It is
// used for events that are not yet stored, such as a new event with zero
// capacity.
func Derive(ev model.Event, reserved int) model.Event {
	if status, auto, changed := deriveStatus(ev, reserved); changed {
		ev.Status, ev.StatusAuto = status, auto
	}
	return ev
}

// deriveStatus returns the status an event should have with reserved units
// taken, whether the ledger owns it, and whether that differs from now.
func deriveStatus(ev model.Event, reserved int) (model.EventStatus, bool, bool) {
	available := model.Available(ev.CapacityTotal, reserved)
	switch {
	case ev.Status == model.EventScheduled && available == 0:
		return model.EventSoldOut, true, true
	case ev.Status == model.EventSoldOut && ev.StatusAuto && available > 0:
		return model.EventScheduled, false, true
	}
	return ev.Status, ev.StatusAuto, false
}

// bookable reports whether new capacity may be taken on ev. A soldout the
// ledger set itself defers to the capacity check.
func bookable(ev model.Event) bool {
	return ev.Status == model.EventScheduled || (ev.Status == model.EventSoldOut && ev.StatusAuto)
}

func heldQty(b model.Booking) int {
	if b.Status == model.BookingConfirmed {
		return b.Qty
	}
	return 0
}
