package model

import "time"

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title         string      `json:"title" validate:"required,max=300"`
	Summary       string      `json:"summary" validate:"max=1000"`
	Description   string      `json:"description"`
	Category      string      `json:"category" validate:"max=100"`
	Tags          []string    `json:"tags" validate:"dive,required,max=50"`
	VenueID       *string     `json:"venue_id" validate:"omitempty,uuid"`
	StartAt       time.Time   `json:"start_at" validate:"required"`
	EndAt         time.Time   `json:"end_at" validate:"required,gtfield=StartAt"`
	CapacityTotal int         `json:"capacity_total" validate:"min=0"`
	Status        EventStatus `json:"status"`
}

// EventPatch lists every field an event edit may touch. A nil pointer
// leaves the column unchanged. An empty VenueID clears the venue.
type EventPatch struct {
	Title         *string      `json:"title" validate:"omitempty,min=1,max=300"`
	Summary       *string      `json:"summary" validate:"omitempty,max=1000"`
	Description   *string      `json:"description"`
	Category      *string      `json:"category" validate:"omitempty,max=100"`
	Tags          *[]string    `json:"tags"`
	VenueID       *string      `json:"venue_id" validate:"omitempty,uuid"`
	StartAt       *time.Time   `json:"start_at"`
	EndAt         *time.Time   `json:"end_at"`
	CapacityTotal *int         `json:"capacity_total" validate:"omitempty,min=0"`
	Status        *EventStatus `json:"status"`
}

// Empty reports whether the patch carries no field at all.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Summary == nil && p.Description == nil &&
		p.Category == nil && p.Tags == nil && p.VenueID == nil &&
		p.StartAt == nil && p.EndAt == nil && p.CapacityTotal == nil && p.Status == nil
}

// Apply writes the set fields onto ev. An explicit status clears the
// ledger's ownership of the status.
func (p EventPatch) Apply(ev *Event) {
	if p.Title != nil {
		ev.Title = *p.Title
	}
	if p.Summary != nil {
		ev.Summary = *p.Summary
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.Category != nil {
		ev.Category = *p.Category
	}
	if p.Tags != nil {
		ev.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.VenueID != nil {
		if *p.VenueID == "" {
			ev.VenueID = nil
		} else {
			id := *p.VenueID
			ev.VenueID = &id
		}
	}
	if p.StartAt != nil {
		ev.StartAt = *p.StartAt
	}
	if p.EndAt != nil {
		ev.EndAt = *p.EndAt
	}
	if p.CapacityTotal != nil {
		ev.CapacityTotal = *p.CapacityTotal
	}
	if p.Status != nil {
		ev.Status = *p.Status
		ev.StatusAuto = false
	}
}

// CreateBookingRequest is the payload for reserving places on an event.
// Qty defaults to 1 when omitted.
type CreateBookingRequest struct {
	EventID string `json:"event_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Notes   string `json:"notes" validate:"max=2000"`
	Qty     *int   `json:"qty"`
}

// BookingPatch is the set of booking fields that may change after creation.
type BookingPatch struct {
	Status *BookingStatus `json:"status"`
	Qty    *int           `json:"qty"`
}

// Empty reports whether the patch carries no field at all.
func (p BookingPatch) Empty() bool {
	return p.Status == nil && p.Qty == nil
}

// CreateVenueRequest is the payload for creating a venue.
type CreateVenueRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CategoryRequest is the payload for adding a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
