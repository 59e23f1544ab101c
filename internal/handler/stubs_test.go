package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

type stubEventService struct {
	detail     model.EventDetail
	page       model.EventPage
	err        error
	gotFilter  model.EventFilter
	gotPatch   model.EventPatch
	gotCreate  model.CreateEventRequest
	deletedIDs []string
}

func (s *stubEventService) CreateEvent(_ context.Context, req model.CreateEventRequest) (model.EventDetail, error) {
	s.gotCreate = req
	return s.detail, s.err
}

func (s *stubEventService) GetEvent(context.Context, string) (model.EventDetail, error) {
	return s.detail, s.err
}

func (s *stubEventService) ListEvents(_ context.Context, f model.EventFilter) (model.EventPage, error) {
	s.gotFilter = f
	return s.page, s.err
}

func (s *stubEventService) UpdateEvent(_ context.Context, _ string, patch model.EventPatch) (model.EventDetail, error) {
	s.gotPatch = patch
	return s.detail, s.err
}

func (s *stubEventService) DeleteEvent(_ context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.err
}

type stubBookingService struct {
	result   model.BookingResult
	deletion model.BookingDeletion
	avail    model.Availability
	listings []model.BookingListing
	err      error
	gotReq   model.CreateBookingRequest
	gotPatch model.BookingPatch
	gotID    string
}

func (s *stubBookingService) CreateBooking(_ context.Context, req model.CreateBookingRequest) (model.BookingResult, error) {
	s.gotReq = req
	return s.result, s.err
}

func (s *stubBookingService) UpdateBooking(_ context.Context, id string, patch model.BookingPatch) (model.BookingResult, error) {
	s.gotID, s.gotPatch = id, patch
	return s.result, s.err
}

func (s *stubBookingService) DeleteBooking(_ context.Context, id string) (model.BookingDeletion, error) {
	s.gotID = id
	return s.deletion, s.err
}

func (s *stubBookingService) Availability(_ context.Context, id string) (model.Availability, error) {
	s.gotID = id
	return s.avail, s.err
}

func (s *stubBookingService) ListBookings(context.Context) ([]model.BookingListing, error) {
	return s.listings, s.err
}

func (s *stubBookingService) ListEventBookings(_ context.Context, id string) ([]model.BookingListing, error) {
	s.gotID = id
	return s.listings, s.err
}

type stubVenueService struct {
	venue  model.Venue
	venues []model.Venue
	err    error
}

func (s *stubVenueService) CreateVenue(context.Context, model.CreateVenueRequest) (model.Venue, error) {
	return s.venue, s.err
}

func (s *stubVenueService) ListVenues(context.Context) ([]model.Venue, error) {
	return s.venues, s.err
}

func (s *stubVenueService) DeleteVenue(context.Context, string) error {
	return s.err
}

type stubCategoryService struct {
	list    []string
	err     error
	gotName string
}

func (s *stubCategoryService) ListCategories(context.Context) ([]string, error) {
	return s.list, s.err
}

func (s *stubCategoryService) AddCategory(_ context.Context, req model.CategoryRequest) ([]string, error) {
	s.gotName = req.Name
	return s.list, s.err
}

func (s *stubCategoryService) RemoveCategory(_ context.Context, name string) ([]string, error) {
	s.gotName = name
	return s.list, s.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(svc Services) http.Handler {
	if svc.Events == nil {
		svc.Events = &stubEventService{}
	}
	if svc.Bookings == nil {
		svc.Bookings = &stubBookingService{}
	}
	if svc.Venues == nil {
		svc.Venues = &stubVenueService{}
	}
	if svc.Categories == nil {
		svc.Categories = &stubCategoryService{}
	}
	if svc.DB == nil {
		svc.DB = stubPinger{}
	}
	return New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Routes()
}
