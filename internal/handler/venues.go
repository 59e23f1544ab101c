package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// ListVenues handles GET /api/venues
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.svc.Venues.ListVenues(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	writeJSON(w, http.StatusOK, venues)
}

// CreateVenue handles POST /api/venues
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVenueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := h.svc.Venues.CreateVenue(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// DeleteVenue handles DELETE /api/venues/{id}
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Venues.DeleteVenue(r.Context(), urlParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
