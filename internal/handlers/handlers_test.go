package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/diewo77/glasspro/internal/store"
	"github.com/diewo77/glasspro/validation"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
)

type recordedEvents []string

func (e *recordedEvents) DocumentEvent(docType, event string) {
	*e = append(*e, docType+":"+event)
}

func newTestShop(t *testing.T) *services.Shop {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	shop, err := services.NewShop(context.Background(), services.Options{
		Store:    store.NewMemory(),
		Logger:   logger,
		Username: "admin",
		Password: "admin123",
		HashCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("shop: %v", err)
	}
	return shop
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return body.Error
}

func TestWriteError(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{validation.Violations{"name": "required"}, http.StatusBadRequest, "validation_failed"},
		{fmt.Errorf("lookup: %w", services.ErrDocumentNotFound), http.StatusNotFound, "document_not_found"},
		{services.ErrWorkerNotFound, http.StatusNotFound, "worker_not_found"},
		{services.ErrEmptyDocument, http.StatusBadRequest, "empty_document"},
		{fmt.Errorf("%w: width", services.ErrInvalidValue), http.StatusBadRequest, "invalid_value"},
		{services.ErrNotQuotation, http.StatusConflict, "not_a_quotation"},
		{fmt.Errorf("%w: bad year", services.ErrMalformedNumber), http.StatusConflict, "malformed_document_number"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, logger, c.err)
		if rec.Code != c.status {
			t.Errorf("%v: expected %d got %d", c.err, c.status, rec.Code)
		}
		if got := errorCode(t, rec); got != c.code {
			t.Errorf("%v: expected %s got %s", c.err, c.code, got)
		}
	}
	if len(hook.AllEntries()) != 1 {
		t.Fatalf("only unexpected errors are logged, got %d entries", len(hook.AllEntries()))
	}
}

func TestUpdateItemAcceptsStringValues(t *testing.T) {
	shop := newTestShop(t)
	logger, _ := logtest.NewNullLogger()
	h := NewDocumentHandler(shop, logger, nil, "PKR")

	req := httptest.NewRequest(http.MethodPost, "/documents/1/items/0", strings.NewReader(`{"field":"width","value":"48"}`))
	req.SetPathValue("id", "1")
	req.SetPathValue("index", "0")
	rec := httptest.NewRecorder()
	h.UpdateItem(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	doc, _ := shop.Document("1")
	if doc.Items[0].Quantity != 12 || doc.Amount != 1620 {
		t.Fatalf("expected 48x36 to price 12 sq ft, got qty=%v amount=%v", doc.Items[0].Quantity, doc.Amount)
	}
}

func TestUpdateItemRejections(t *testing.T) {
	shop := newTestShop(t)
	logger, _ := logtest.NewNullLogger()
	h := NewDocumentHandler(shop, logger, nil, "PKR")
	cases := []struct {
		name  string
		index string
		body  string
		code  string
	}{
		{"bad index", "x", `{"field":"width","value":1}`, "invalid_index"},
		{"out of range", "4", `{"field":"width","value":1}`, "line_item_out_of_range"},
		{"unknown field", "0", `{"field":"colour","value":"red"}`, "unknown_line_item_field"},
		{"not a number", "0", `{"field":"quantity","value":"lots"}`, "invalid_value"},
		{"object value", "0", `{"field":"quantity","value":{}}`, "invalid_value"},
		{"negative width", "0", `{"field":"width","value":-24}`, "validation_failed"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(c.body))
			req.SetPathValue("id", "1")
			req.SetPathValue("index", c.index)
			rec := httptest.NewRecorder()
			h.UpdateItem(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
			if got := errorCode(t, rec); got != c.code {
				t.Fatalf("expected %s got %s", c.code, got)
			}
		})
	}
	if doc, _ := shop.Document("1"); doc.Amount != 810 {
		t.Fatalf("rejected edits must leave the document alone, amount=%v", doc.Amount)
	}
}

func TestDocumentEventsEmitted(t *testing.T) {
	shop := newTestShop(t)
	logger, _ := logtest.NewNullLogger()
	var events recordedEvents
	h := NewDocumentHandler(shop, logger, &events, "PKR")

	req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(
		`{"clientName":"Ahmed","docType":"QUOTATION","selections":[{"source":"service","id":"s2","quantity":3}]}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	var doc models.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Amount != 150 {
		t.Fatalf("expected 3 × 50 = 150 got %v", doc.Amount)
	}

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.SetPathValue("id", doc.ID)
	rec = httptest.NewRecorder()
	h.Convert(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	want := []string{"QUOTATION:created", "INVOICE:converted"}
	if len(events) != len(want) {
		t.Fatalf("expected %v got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v got %v", want, events)
		}
	}
}

func TestInventoryListIncludesStockValue(t *testing.T) {
	shop := newTestShop(t)
	logger, _ := logtest.NewNullLogger()
	h := NewInventoryHandler(shop, logger)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/inventory?q=gls", nil))
	var body struct {
		Items      []models.InventoryItem `json:"items"`
		Total      int                    `json:"total"`
		StockValue float64                `json:"stockValue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 {
		t.Fatalf("expected 2 glass sheets got %d", body.Total)
	}
	if body.StockValue != 2500*85+800*160 {
		t.Fatalf("unexpected stock value %v", body.StockValue)
	}
}
