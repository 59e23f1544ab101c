package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// VenueStore is the venue persistence the service needs.
type VenueStore interface {
	Create(ctx context.Context, v model.Venue) error
	List(ctx context.Context) ([]model.Venue, error)
	Delete(ctx context.Context, id string) error
}

// VenueService manages venues.
type VenueService struct {
	venues VenueStore
	opts   options
}

// NewVenueService constructs a VenueService.
func NewVenueService(venues VenueStore, opts ...Option) *VenueService {
	return &VenueService{venues: venues, opts: buildOptions(opts)}
}

// CreateVenue stores a new venue; names are unique.
func (s *VenueService) CreateVenue(ctx context.Context, req model.CreateVenueRequest) (model.Venue, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return model.Venue{}, err
	}
	v := model.Venue{ID: s.opts.newID(), Name: req.Name, CreatedAt: s.opts.now()}
	if err := s.venues.Create(ctx, v); err != nil {
		return model.Venue{}, err
	}
	return v, nil
}

// ListVenues returns all venues ordered by name.
func (s *VenueService) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return s.venues.List(ctx)
}

// DeleteVenue removes a venue.
func (s *VenueService) DeleteVenue(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	return s.venues.Delete(ctx, id)
}
