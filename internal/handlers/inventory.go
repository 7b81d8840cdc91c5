package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

type InventoryHandler struct {
	shop *services.Shop
	log  logrus.FieldLogger
}

func NewInventoryHandler(shop *services.Shop, log logrus.FieldLogger) *InventoryHandler {
	return &InventoryHandler{shop: shop, log: log}
}

// List supports ?q= to search by name or SKU.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.shop.Inventory(strings.TrimSpace(r.URL.Query().Get("q")))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"total":      len(items),
		"stockValue": services.InventoryValue(items),
	})
}

func (h *InventoryHandler) View(w http.ResponseWriter, r *http.Request) {
	item, err := h.shop.InventoryItem(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.InventoryItem
	if !decode(w, r, &item) {
		return
	}
	created, err := h.shop.AddInventoryItem(r.Context(), item)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item models.InventoryItem
	if !decode(w, r, &item) {
		return
	}
	item.ID = r.PathValue("id")
	updated, err := h.shop.UpdateInventoryItem(r.Context(), item)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.DeleteInventoryItem(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
