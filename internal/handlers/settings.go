package handlers

import (
	"net/http"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	shop *services.Shop
	log  logrus.FieldLogger
}

func NewSettingsHandler(shop *services.Shop, log logrus.FieldLogger) *SettingsHandler {
	return &SettingsHandler{shop: shop, log: log}
}

func (h *SettingsHandler) View(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.shop.Settings())
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s models.Settings
	if !decode(w, r, &s) {
		return
	}
	updated, err := h.shop.UpdateSettings(r.Context(), s)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
