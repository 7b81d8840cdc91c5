package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/printing"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/sirupsen/logrus"
)

// DocumentEvents receives document lifecycle notifications, e.g. for metrics.
type DocumentEvents interface {
	DocumentEvent(docType, event string)
}

type DocumentHandler struct {
	shop     *services.Shop
	log      logrus.FieldLogger
	events   DocumentEvents
	currency string
}

func NewDocumentHandler(shop *services.Shop, log logrus.FieldLogger, events DocumentEvents, currency string) *DocumentHandler {
	return &DocumentHandler{shop: shop, log: log, events: events, currency: currency}
}

func (h *DocumentHandler) emit(doc models.Document, event string) {
	if h.events != nil {
		h.events.DocumentEvent(string(doc.Type), event)
	}
	h.log.WithFields(logrus.Fields{"number": doc.Number, "event": event}).Info("document event")
}

// List supports ?type=INVOICE|QUOTATION and ?q= for a client name search.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := services.DocumentFilter{
		Type:   models.DocumentType(strings.ToUpper(q.Get("type"))),
		Client: strings.TrimSpace(q.Get("q")),
	}
	if f.Type != "" && !f.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, services.ErrInvalidType.Error(), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.shop.Documents(f))
}

func (h *DocumentHandler) View(w http.ResponseWriter, r *http.Request) {
	doc, err := h.shop.Document(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

type createDocumentRequest struct {
	ClientName       string               `json:"clientName"`
	ClientEmail      string               `json:"clientEmail"`
	Date             string               `json:"date"`
	Type             models.DocumentType  `json:"docType"`
	AssignedWorkerID string               `json:"assignedWorkerId"`
	Selections       []services.Selection `json:"selections"`
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createDocumentRequest
	if !decode(w, r, &input) {
		return
	}
	b := services.NewBuilder(nil)
	if err := h.shop.AddSelections(b, input.Selections); err != nil {
		writeError(w, h.log, err)
		return
	}
	doc, err := h.shop.CreateDocument(r.Context(), services.Draft{
		ClientName:       strings.TrimSpace(input.ClientName),
		ClientEmail:      strings.TrimSpace(input.ClientEmail),
		Date:             strings.TrimSpace(input.Date),
		Type:             models.DocumentType(strings.ToUpper(string(input.Type))),
		Items:            b.Items(),
		AssignedWorkerID: input.AssignedWorkerID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.emit(doc, "created")
	httpx.JSON(w, http.StatusCreated, doc)
}

// Update edits the header fields. Line items go through the item endpoints.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClientName  *string                `json:"clientName"`
		ClientEmail *string                `json:"clientEmail"`
		Date        *string                `json:"date"`
		Status      *models.DocumentStatus `json:"status"`
	}
	if !decode(w, r, &input) {
		return
	}
	doc, err := h.shop.Document(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if input.ClientName != nil {
		doc.ClientName = strings.TrimSpace(*input.ClientName)
	}
	if input.ClientEmail != nil {
		doc.ClientEmail = strings.TrimSpace(*input.ClientEmail)
	}
	if input.Date != nil {
		doc.Date = strings.TrimSpace(*input.Date)
	}
	if input.Status != nil {
		doc.Status = *input.Status
	}
	updated, err := h.shop.UpdateDocument(r.Context(), doc)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Selections []services.Selection `json:"selections"`
	}
	if !decode(w, r, &input) {
		return
	}
	doc, err := h.shop.EditItems(r.Context(), r.PathValue("id"), func(b *services.Builder, cat services.Catalog) error {
		return cat.AddSelections(b, input.Selections)
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// UpdateItem sets one field of a line item; numeric values may be sent as numbers or strings.
func (h *DocumentHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	var input struct {
		Field services.LineField `json:"field"`
		Value any                `json:"value"`
	}
	if !decode(w, r, &input) {
		return
	}
	value := ""
	switch v := input.Value.(type) {
	case string:
		value = v
	case float64, bool:
		value = fmt.Sprint(v)
	case nil:
	default:
		httpx.JSONError(w, http.StatusBadRequest, "invalid_value", nil)
		return
	}
	doc, err := h.shop.EditItems(r.Context(), r.PathValue("id"), func(b *services.Builder, _ services.Catalog) error {
		return b.UpdateLineItem(index, input.Field, value)
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	doc, err := h.shop.EditItems(r.Context(), r.PathValue("id"), func(b *services.Builder, _ services.Catalog) error {
		return b.RemoveLineItem(index)
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status models.DocumentStatus `json:"status"`
	}
	if !decode(w, r, &input) {
		return
	}
	doc, err := h.shop.SetDocumentStatus(r.Context(), r.PathValue("id"), input.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.emit(doc, "status_"+strings.ToLower(strings.ReplaceAll(string(doc.Status), " ", "_")))
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Convert(w http.ResponseWriter, r *http.Request) {
	doc, err := h.shop.ConvertQuotation(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.emit(doc, "converted")
	httpx.JSON(w, http.StatusOK, doc)
}

// Assign links a worker; an empty workerId unassigns.
func (h *DocumentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input struct {
		WorkerID string `json:"workerId"`
	}
	if !decode(w, r, &input) {
		return
	}
	doc, err := h.shop.AssignWorker(r.Context(), r.PathValue("id"), input.WorkerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// PDF renders the print artifact.
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.shop.Document(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	out, err := printing.DocumentPDF(doc, h.shop.Settings(), h.currency)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.Attachment(w, "application/pdf", doc.Number+".pdf", out)
}
