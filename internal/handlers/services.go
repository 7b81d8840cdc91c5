package handlers

import (
	"net/http"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

// ServiceHandler manages the workshop service menu.
type ServiceHandler struct {
	shop *services.Shop
	log  logrus.FieldLogger
}

func NewServiceHandler(shop *services.Shop, log logrus.FieldLogger) *ServiceHandler {
	return &ServiceHandler{shop: shop, log: log}
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.shop.Services())
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if !decode(w, r, &svc) {
		return
	}
	created, err := h.shop.AddService(r.Context(), svc)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeleteService(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
