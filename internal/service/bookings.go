package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/ledger"
	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// BookingLedger is the part of the capacity ledger bookings go through.
type BookingLedger interface {
	Reserve(ctx context.Context, in ledger.ReserveInput) (model.Booking, error)
	Update(ctx context.Context, bookingID string, patch model.BookingPatch) (model.Booking, error)
	Remove(ctx context.Context, bookingID string) (model.Booking, error)
	Availability(ctx context.Context, eventID string) (model.Availability, error)
}

// BookingReader lists bookings for display.
type BookingReader interface {
	ListAll(ctx context.Context) ([]model.BookingListing, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.BookingListing, error)
}

// BookingService validates booking requests and hands every capacity
// change to the ledger.
type BookingService struct {
	ledger   BookingLedger
	bookings BookingReader
}

// NewBookingService constructs a BookingService.
func NewBookingService(l BookingLedger, bookings BookingReader) *BookingService {
	return &BookingService{ledger: l, bookings: bookings}
}

// CreateBooking reserves places on an event. Qty defaults to 1.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.BookingResult, error) {
	req.EventID = strings.TrimSpace(req.EventID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validateStruct(req); err != nil {
		return model.BookingResult{}, err
	}
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	b, err := s.ledger.Reserve(ctx, ledger.ReserveInput{
		EventID: req.EventID,
		Qty:     qty,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		return model.BookingResult{}, err
	}
	return model.BookingResult{Booking: b, Message: fmt.Sprintf("reserved %d place(s)", b.Qty)}, nil
}

// UpdateBooking changes a booking's status and/or qty.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, patch model.BookingPatch) (model.BookingResult, error) {
	b, err := s.ledger.Update(ctx, id, patch)
	if err != nil {
		return model.BookingResult{}, err
	}
	return model.BookingResult{Booking: b, Message: "booking updated"}, nil
}

// DeleteBooking removes a booking, releasing its places if it was confirmed.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) (model.BookingDeletion, error) {
	b, err := s.ledger.Remove(ctx, id)
	if err != nil {
		return model.BookingDeletion{}, err
	}
	return model.BookingDeletion{Message: "booking deleted", Deleted: b}, nil
}

// Availability reports an event's live capacity figures.
func (s *BookingService) Availability(ctx context.Context, eventID string) (model.Availability, error) {
	return s.ledger.Availability(ctx, eventID)
}

// ListBookings returns every booking, newest first.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.BookingListing, error) {
	return s.bookings.ListAll(ctx)
}

// ListEventBookings returns the bookings of one event. A missing event is
// reported as not found rather than as an empty list.
func (s *BookingService) ListEventBookings(ctx context.Context, eventID string) ([]model.BookingListing, error) {
	if _, err := s.ledger.Availability(ctx, eventID); err != nil {
		return nil, err
	}
	return s.bookings.ListByEvent(ctx, eventID)
}
