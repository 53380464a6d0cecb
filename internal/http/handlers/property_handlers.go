package handlers

import (
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/http/response"
)

func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.properties.List(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, properties)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, property)
}

// CheckAvailability answers whether a date range is free of active bookings.
func (h *Handlers) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	checkIn, err := domain.ParseDate(r.URL.Query().Get("checkIn"))
	if err != nil {
		response.BadRequest(w, "invalid checkIn date")
		return
	}
	checkOut, err := domain.ParseDate(r.URL.Query().Get("checkOut"))
	if err != nil {
		response.BadRequest(w, "invalid checkOut date")
		return
	}
	if !checkOut.After(checkIn) {
		response.BadRequest(w, "checkOut must be after checkIn")
		return
	}

	available, err := h.bookings.IsAvailable(r.Context(), id, checkIn, checkOut)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}
