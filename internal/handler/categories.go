package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/venue-booking/internal/model"
)

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Categories.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// AddCategory handles POST /api/categories
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	list, err := h.svc.Categories.AddCategory(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// RemoveCategory handles DELETE /api/categories/{name}
func (h *Handler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Categories.RemoveCategory(r.Context(), urlParam(r, "name"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
