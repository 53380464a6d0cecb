package handlers

import (
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/http/middleware"
	"github.com/stayviet/stayviet/internal/http/response"
)

func (h *Handlers) ListPropertyReviews(w http.ResponseWriter, r *http.Request) {
	propertyID, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	reviews, err := h.reviews.ListForProperty(r.Context(), propertyID, page, limit)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	var req domain.CreateReviewRequest
	if err := decode(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handlers) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	reviews, err := h.reviews.ListForUser(r.Context(), claims.Sub)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	id, err := idParam(r, "id")
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	if err := h.reviews.Delete(r.Context(), claims.Sub, id); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
