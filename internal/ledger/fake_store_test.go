package ledger

import (
	"context"
	"strings"
	"sync"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// fakeStore keeps events and bookings in memory. Transactions run one at a
// time and a failed transaction restores the state it started from.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]model.Event
	bookings map[string]model.Booking
	order    []string

	failInsert error
	txCount    int
}

type fakeTxKey struct{}

func newFakeStore(events ...model.Event) *fakeStore {
	s := &fakeStore{
		events:   make(map[string]model.Event),
		bookings: make(map[string]model.Booking),
	}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	return s
}

func (s *fakeStore) addBooking(b model.Booking) {
	s.bookings[b.ID] = b
	s.order = append(s.order, b.ID)
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	events := make(map[string]model.Event, len(s.events))
	for k, v := range s.events {
		events[k] = v
	}
	bookings := make(map[string]model.Booking, len(s.bookings))
	for k, v := range s.bookings {
		bookings[k] = v
	}
	order := append([]string(nil), s.order...)

	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		s.events, s.bookings, s.order = events, bookings, order
		return err
	}
	return nil
}

func (s *fakeStore) LockEvent(_ context.Context, eventID string) (model.Event, error) {
	ev, ok := s.events[eventID]
	if !ok {
		return model.Event{}, model.ErrEventNotFound
	}
	return ev, nil
}

func (s *fakeStore) SumConfirmed(_ context.Context, eventID string) (int, error) {
	return s.sumConfirmed(eventID), nil
}

func (s *fakeStore) sumConfirmed(eventID string) int {
	total := 0
	for _, b := range s.bookings {
		if b.EventID == eventID && b.Status == model.BookingConfirmed {
			total += b.Qty
		}
	}
	return total
}

func (s *fakeStore) Availability(_ context.Context, eventID string) (model.Event, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[eventID]
	if !ok {
		return model.Event{}, 0, model.ErrEventNotFound
	}
	return ev, s.sumConfirmed(eventID), nil
}

func (s *fakeStore) GetBooking(_ context.Context, id string) (model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, model.ErrBookingNotFound
	}
	return b, nil
}

func (s *fakeStore) LockBooking(ctx context.Context, id string) (model.Booking, error) {
	return s.GetBooking(ctx, id)
}

func (s *fakeStore) InsertBooking(_ context.Context, b model.Booking) error {
	if s.failInsert != nil {
		return s.failInsert
	}
	if _, ok := s.events[b.EventID]; !ok {
		return model.ErrEventNotFound
	}
	if b.Status == model.BookingConfirmed && s.hasConfirmedEmail(b.EventID, b.Email, b.ID) {
		return model.ErrDuplicateBooking
	}
	s.addBooking(b)
	return nil
}

func (s *fakeStore) SaveBooking(_ context.Context, b model.Booking) error {
	if _, ok := s.bookings[b.ID]; !ok {
		return model.ErrBookingNotFound
	}
	if b.Status == model.BookingConfirmed && s.hasConfirmedEmail(b.EventID, b.Email, b.ID) {
		return model.ErrDuplicateBooking
	}
	s.bookings[b.ID] = b
	return nil
}

func (s *fakeStore) hasConfirmedEmail(eventID, email, exceptID string) bool {
	for _, other := range s.bookings {
		if other.ID != exceptID && other.EventID == eventID &&
			other.Status == model.BookingConfirmed && strings.EqualFold(other.Email, email) {
			return true
		}
	}
	return false
}

func (s *fakeStore) DeleteBooking(_ context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return model.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *fakeStore) SaveEventStatus(_ context.Context, eventID string, status model.EventStatus, auto bool) error {
	ev, ok := s.events[eventID]
	if !ok {
		return model.ErrEventNotFound
	}
	ev.Status, ev.StatusAuto = status, auto
	s.events[eventID] = ev
	return nil
}

func (s *fakeStore) SaveEvent(_ context.Context, ev model.Event) error {
	if _, ok := s.events[ev.ID]; !ok {
		return model.ErrEventNotFound
	}
	s.events[ev.ID] = ev
	return nil
}

// event returns the stored event outside any transaction.
func (s *fakeStore) event(id string) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id]
}

func (s *fakeStore) confirmed(eventID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumConfirmed(eventID)
}
