// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// EventService is what the event handlers need.
type EventService interface {
	CreateEvent(ctx context.Context, req model.CreateEventRequest) (model.EventDetail, error)
	GetEvent(ctx context.Context, id string) (model.EventDetail, error)
	ListEvents(ctx context.Context, f model.EventFilter) (model.EventPage, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.EventDetail, error)
	DeleteEvent(ctx context.Context, id string) error
}

// BookingService is what the booking handlers need.
type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.BookingResult, error)
	UpdateBooking(ctx context.Context, id string, patch model.BookingPatch) (model.BookingResult, error)
	DeleteBooking(ctx context.Context, id string) (model.BookingDeletion, error)
	Availability(ctx context.Context, eventID string) (model.Availability, error)
	ListBookings(ctx context.Context) ([]model.BookingListing, error)
	ListEventBookings(ctx context.Context, eventID string) ([]model.BookingListing, error)
}

// VenueService is what the venue handlers need.
type VenueService interface {
	CreateVenue(ctx context.Context, req model.CreateVenueRequest) (model.Venue, error)
	ListVenues(ctx context.Context) ([]model.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

// CategoryService is what the category handlers need.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, req model.CategoryRequest) ([]string, error)
	RemoveCategory(ctx context.Context, name string) ([]string, error)
}

// Pinger checks that the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the dependencies of the HTTP layer.
type Services struct {
	Events     EventService
	Bookings   BookingService
	Venues     VenueService
	Categories CategoryService
	DB         Pinger
}

// Handler holds all HTTP handlers for the venue booking API.
type Handler struct {
	svc Services
	log *slog.Logger
}

// New constructs a Handler.
func New(svc Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

// Routes builds the router with the full middleware stack.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(h.log))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", h.ListVenues)
			r.Post("/", h.CreateVenue)
			r.Delete("/{id}", h.DeleteVenue)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Patch("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
			r.Get("/{id}/availability", h.Availability)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Post("/", h.CreateBooking)
			r.Get("/event/{eventId}", h.ListEventBookings)
			r.Patch("/{id}", h.UpdateBooking)
			r.Delete("/{id}", h.DeleteBooking)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.AddCategory)
			r.Delete("/{name}", h.RemoveCategory)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeBody decodes the request body into dst and answers 400 itself when
// that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unclassified is logged and reported as a generic 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var capErr *model.CapacityError
	switch {
	case errors.As(err, &capErr):
		available := capErr.Available
		writeJSON(w, http.StatusConflict, model.ErrorResponse{
			Error:     capErr.Error(),
			Code:      "insufficient_capacity",
			Available: &available,
		})
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, model.ErrConflict):
		writeError(w, http.StatusConflict, conflictCode(err), err.Error())
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, model.ErrRetryable):
		h.log.WarnContext(r.Context(), "retryable storage failure", "err", err,
			"request_id", chimiddleware.GetReqID(r.Context()))
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "retry", "temporary storage conflict, retry the request")
	default:
		h.log.ErrorContext(r.Context(), "request failed", "err", err,
			"method", r.Method, "path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func conflictCode(err error) string {
	switch {
	case errors.Is(err, model.ErrEventClosed):
		return "event_closed"
	case errors.Is(err, model.ErrDuplicateBooking):
		return "duplicate_booking"
	case errors.Is(err, model.ErrCapacityBelowReserved):
		return "capacity_below_reserved"
	}
	return "conflict"
}

func urlParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
