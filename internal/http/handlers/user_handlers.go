package handlers

import (
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/http/middleware"
	"github.com/stayviet/stayviet/internal/http/response"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	user, err := h.users.Get(r.Context(), claims.Sub)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	var req domain.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), claims.Sub, &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	propertyID, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.users.AddFavorite(r.Context(), claims.Sub, propertyID); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "favorite added"})
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	propertyID, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.users.RemoveFavorite(r.Context(), claims.Sub, propertyID); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}
