package handler

import (
	"net/http"
	"strconv"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// CreateEvent handles POST /api/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.svc.Events.CreateEvent(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// ListEvents handles GET /api/events
// Supports ?status=&category=&venue_id=&q=&page=&page_size=
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intQuery(q.Get("page"), "page")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	pageSize, err := intQuery(q.Get("page_size"), "page_size")
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	result, err := h.svc.Events.ListEvents(r.Context(), model.EventFilter{
		Status:   model.EventStatus(q.Get("status")),
		Category: q.Get("category"),
		VenueID:  q.Get("venue_id"),
		Query:    q.Get("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetEvent handles GET /api/events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.Events.GetEvent(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// UpdateEvent handles PATCH /api/events/{id}
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch model.EventPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	ev, err := h.svc.Events.UpdateEvent(r.Context(), urlParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /api/events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Events.DeleteEvent(r.Context(), urlParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Availability handles GET /api/events/{id}/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	av, err := h.svc.Bookings.Availability(r.Context(), urlParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, av)
}

func intQuery(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}
