// Package model defines the core domain types for the venue booking system.
package model

import "time"

// EventStatus is the lifecycle state shown for an event.
type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventSoldOut   EventStatus = "soldout"
	EventDraft     EventStatus = "draft"
	EventPostponed EventStatus = "postponed"
	EventCancelled EventStatus = "cancelled"
	EventFinished  EventStatus = "finished"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventScheduled, EventSoldOut, EventDraft, EventPostponed, EventCancelled, EventFinished:
		return true
	}
	return false
}

// BookingStatus is the state of a single booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	return s == BookingConfirmed || s == BookingCancelled
}

// Venue is a place where events happen.
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Event represents a schedulable activity with a fixed capacity.
type Event struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Summary       string      `json:"summary"`
	Description   string      `json:"description"`
	Category      string      `json:"category"`
	Tags          []string    `json:"tags"`
	VenueID       *string     `json:"venue_id"`
	VenueName     string      `json:"venue_name,omitempty"`
	StartAt       time.Time   `json:"start_at"`
	EndAt         time.Time   `json:"end_at"`
	CapacityTotal int         `json:"capacity_total"`
	Status        EventStatus `json:"status"`
	// StatusAuto is set when Status was last written by the capacity ledger
	// rather than by an explicit edit.
	StatusAuto bool      `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EventDetail is an event together with its live capacity figures.
type EventDetail struct {
	Event
	ReservedQty  int `json:"reserved_qty"`
	AvailableQty int `json:"available_qty"`
}

// Booking is a reservation of qty capacity units against one event.
type Booking struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Notes     string        `json:"notes"`
	Qty       int           `json:"qty"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BookingListing is a booking joined with a few fields of its event.
type BookingListing struct {
	Booking
	EventTitle    string     `json:"event_title"`
	EventDate     *time.Time `json:"event_date"`
	EventCapacity int        `json:"event_capacity"`
	VenueName     string     `json:"venue_name,omitempty"`
}

// BookingResult is a booking returned with a confirmation message.
type BookingResult struct {
	Booking
	Message string `json:"message"`
}

// BookingDeletion is the response to a booking removal.
type BookingDeletion struct {
	Message string  `json:"message"`
	Deleted Booking `json:"deleted"`
}

// Availability summarises capacity for one event.
type Availability struct {
	EventID       string      `json:"event_id"`
	CapacityTotal int         `json:"capacity_total"`
	ReservedQty   int         `json:"reserved_qty"`
	AvailableQty  int         `json:"available_qty"`
	IsSoldOut     bool        `json:"is_sold_out"`
	Status        EventStatus `json:"status"`
}

// NewAvailability derives the summary from capacity and the confirmed sum.
func NewAvailability(ev Event, reserved int) Availability {
	available := Available(ev.CapacityTotal, reserved)
	return Availability{
		EventID:       ev.ID,
		CapacityTotal: ev.CapacityTotal,
		ReservedQty:   reserved,
		AvailableQty:  available,
		IsSoldOut:     available <= 0,
		Status:        ev.Status,
	}
}

// Available returns capacity minus reserved, floored at zero.
func Available(capacity, reserved int) int {
	if reserved >= capacity {
		return 0
	}
	return capacity - reserved
}

// EventPage is one page of an event listing.
type EventPage struct {
	Items    []Event `json:"items"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// EventFilter narrows an event listing. Zero values mean "any".
type EventFilter struct {
	Status   EventStatus
	Category string
	VenueID  string
	Query    string
	Page     int
	PageSize int
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Available *int   `json:"available,omitempty"`
}
