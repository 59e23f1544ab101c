package service

import (
	"context"
	"sync"

	"github.com/Shivanand-hulikatti/venue-booking/internal/ledger"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

type fakeEventStore struct {
	events   map[string]model.Event
	reserved map[string]int
	lastList model.EventFilter
	err      error
}

func newFakeEventStore(events ...model.Event) *fakeEventStore {
	s := &fakeEventStore{events: map[string]model.Event{}, reserved: map[string]int{}}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	return s
}

func (s *fakeEventStore) Create(_ context.Context, ev model.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events[ev.ID] = ev
	return nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id string) (model.EventDetail, error) {
	ev, ok := s.events[id]
	if !ok {
		return model.EventDetail{}, model.ErrEventNotFound
	}
	reserved := s.reserved[id]
	return model.EventDetail{
		Event:        ev,
		ReservedQty:  reserved,
		AvailableQty: model.Available(ev.CapacityTotal, reserved),
	}, nil
}

func (s *fakeEventStore) List(_ context.Context, f model.EventFilter) (model.EventPage, error) {
	s.lastList = f
	page := model.EventPage{Items: []model.Event{}, Page: f.Page, PageSize: f.PageSize}
	for _, ev := range s.events {
		page.Items = append(page.Items, ev)
	}
	page.Total = len(page.Items)
	return page, nil
}

func (s *fakeEventStore) Delete(_ context.Context, id string) error {
	if _, ok := s.events[id]; !ok {
		return model.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

// ReconcileEvent mirrors the ledger's contract on the fake's own data.
func (s *fakeEventStore) ReconcileEvent(_ context.Context, id string, edit func(*model.Event) error) (model.Event, error) {
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, model.ErrEventNotFound
	}
	next := ev
	if err := edit(&next); err != nil {
		return model.Event{}, err
	}
	if next.CapacityTotal < s.reserved[id] {
		return model.Event{}, model.ErrCapacityBelowReserved
	}
	next = ledger.Derive(next, s.reserved[id])
	s.events[id] = next
	return next, nil
}

type fakeVenueStore struct {
	venues []model.Venue
}

func (s *fakeVenueStore) Create(_ context.Context, v model.Venue) error {
	for _, existing := range s.venues {
		if existing.Name == v.Name {
			return model.ErrVenueExists
		}
	}
	s.venues = append(s.venues, v)
	return nil
}

func (s *fakeVenueStore) List(context.Context) ([]model.Venue, error) {
	return append([]model.Venue{}, s.venues...), nil
}

func (s *fakeVenueStore) Delete(_ context.Context, id string) error {
	for i, v := range s.venues {
		if v.ID == id {
			s.venues = append(s.venues[:i], s.venues[i+1:]...)
			return nil
		}
	}
	return model.ErrVenueNotFound
}

type stubBookingLedger struct {
	reserveIn  ledger.ReserveInput
	booking    model.Booking
	avail      model.Availability
	err        error
	availErr   error
	reserveHit int
}

func (s *stubBookingLedger) Reserve(_ context.Context, in ledger.ReserveInput) (model.Booking, error) {
	s.reserveHit++
	s.reserveIn = in
	if s.err != nil {
		return model.Booking{}, s.err
	}
	b := s.booking
	b.EventID, b.Qty, b.Email = in.EventID, in.Qty, in.Email
	return b, nil
}

func (s *stubBookingLedger) Update(_ context.Context, _ string, patch model.BookingPatch) (model.Booking, error) {
	if s.err != nil {
		return model.Booking{}, s.err
	}
	b := s.booking
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	return b, nil
}

func (s *stubBookingLedger) Remove(context.Context, string) (model.Booking, error) {
	if s.err != nil {
		return model.Booking{}, s.err
	}
	return s.booking, nil
}

func (s *stubBookingLedger) Availability(context.Context, string) (model.Availability, error) {
	return s.avail, s.availErr
}

type stubBookingReader struct {
	listings []model.BookingListing
}

func (s *stubBookingReader) ListAll(context.Context) ([]model.BookingListing, error) {
	return s.listings, nil
}

func (s *stubBookingReader) ListByEvent(_ context.Context, eventID string) ([]model.BookingListing, error) {
	out := []model.BookingListing{}
	for _, l := range s.listings {
		if l.EventID == eventID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeSettings struct {
	mu     sync.Mutex
	values map[string][]byte
	seeds  int
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string][]byte{}}
}

func (s *fakeSettings) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string][]byte, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		s.values = snapshot
		return err
	}
	return nil
}

func (s *fakeSettings) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeSettings) GetForUpdate(ctx context.Context, key string) ([]byte, bool, error) {
	return s.Get(ctx, key)
}

func (s *fakeSettings) Seed(_ context.Context, key string, value []byte) error {
	if _, ok := s.values[key]; !ok {
		s.seeds++
		s.values[key] = value
	}
	return nil
}

func (s *fakeSettings) Put(_ context.Context, key string, value []byte) error {
	s.values[key] = value
	return nil
}
