package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// CreateBooking handles POST /api/bookings
// Reserves qty places (default 1) on the event named in the body.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListBookings handles GET /api/bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Bookings.ListBookings(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []model.BookingListing{}
	}
	writeJSON(w, http.StatusOK, list)
}

// ListEventBookings handles GET /api/bookings/event/{eventId}
func (h *Handler) ListEventBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Bookings.ListEventBookings(r.Context(), urlParam(r, "eventId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []model.BookingListing{}
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateBooking handles PATCH /api/bookings/{id}
// Accepts {"status": "confirmed"|"cancelled"} and/or {"qty": n}.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var patch model.BookingPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	res, err := h.svc.Bookings.UpdateBooking(r.Context(), urlParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteBooking handles DELETE /api/bookings/{id}
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Bookings.DeleteBooking(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
