package handlers

import (
	"net/http"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/http/middleware"
	"github.com/stayviet/stayviet/internal/http/response"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decode(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	res, err := h.users.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, &req); err != nil {
		response.FromError(w, r, err)
		return
	}

	res, err := h.users.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, res)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	user, err := h.users.Get(r.Context(), claims.Sub)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "missing verification token")
		return
	}

	user, err := h.users.VerifyEmail(r.Context(), token)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}
