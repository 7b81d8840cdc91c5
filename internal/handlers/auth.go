package handlers

import (
	"net/http"

	"github.com/diewo77/glasspro/auth"
	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	shop *services.Shop
	log  logrus.FieldLogger
}

func NewAuthHandler(shop *services.Shop, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{shop: shop, log: log}
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &input) {
		return
	}
	if err := h.shop.Login(r.Context(), input.Username, input.Password); err != nil {
		h.log.WithField("username", input.Username).Warn("login rejected")
		writeError(w, h.log, err)
		return
	}
	auth.CreateSession(w, input.Username)
	httpx.JSON(w, http.StatusOK, sessionResponse{Authenticated: true, Username: input.Username})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.shop.Logout(r.Context())
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, sessionResponse{})
}

// Session reports whether the caller holds a live session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	name, ok := auth.UserFromContext(r.Context())
	if !ok || !h.shop.IsAuthenticated() || name != h.shop.Username() {
		httpx.JSON(w, http.StatusOK, sessionResponse{})
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{Authenticated: true, Username: name})
}
