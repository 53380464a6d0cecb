package handlers

import (
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/http/middleware"
	"github.com/stayviet/stayviet/internal/http/response"
)

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	var req domain.CreateBookingRequest
	if err := decode(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	limit := queryInt(r, "limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	bookings, err := h.bookings.ListForUser(r.Context(), claims.Sub, limit, (page-1)*limit)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, bookings)
}

func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	id, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	booking, err := h.bookings.Get(r.Context(), claims.Sub, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, booking)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	id, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	booking, err := h.bookings.Cancel(r.Context(), claims.Sub, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, booking)
}
