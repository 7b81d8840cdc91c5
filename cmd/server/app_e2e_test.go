package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/db"
	"github.com/diewo77/glasspro/internal/metrics"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/diewo77/glasspro/internal/store"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app    *App
	shop   *services.Shop
	cookie *http.Cookie
}

func testConfig(rate string) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{Username: "admin", Password: "admin123", LoginRate: rate},
		App:  config.AppConfig{Currency: "PKR", PhoneRegion: "PK"},
	}
}

func setupE2E(t *testing.T, rate string) *testEnv {
	t.Helper()
	dbi, err := gorm.Open(sqlite.Open("file:e2e_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(dbi); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	logger, _ := logtest.NewNullLogger()
	cfg := testConfig(rate)
	shop, err := services.NewShop(context.Background(), services.Options{
		Store:       store.NewGormStore(dbi),
		Logger:      logger,
		Username:    cfg.Auth.Username,
		Password:    cfg.Auth.Password,
		HashCost:    bcrypt.MinCost,
		PhoneRegion: cfg.App.PhoneRegion,
	})
	if err != nil {
		t.Fatalf("shop: %v", err)
	}
	app, err := NewApp(cfg, shop, logger, metrics.New())
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	return &testEnv{app: app, shop: shop}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.app.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", map[string]string{"username": "admin", "password": "admin123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			e.cookie = c
		}
	}
	if e.cookie == nil {
		t.Fatalf("no session cookie")
	}
}

func decodeDoc(t *testing.T, rec *httptest.ResponseRecorder) models.Document {
	t.Helper()
	var doc models.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return doc
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := setupE2E(t, "100-M")
	for _, path := range []string{"/documents", "/inventory", "/reports/summary", "/settings"} {
		if rec := env.do(t, http.MethodGet, path, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, rec.Code)
		}
	}
	if rec := env.do(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected health 200 got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200 got %d", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	env := setupE2E(t, "100-M")
	rec := env.do(t, http.MethodPost, "/login", map[string]string{"username": "admin", "password": "nope"})
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid_credentials") {
		t.Fatalf("expected 401 invalid_credentials got %d %s", rec.Code, rec.Body.String())
	}
	env.login(t)
	if rec := env.do(t, http.MethodGet, "/session", nil); !strings.Contains(rec.Body.String(), `"authenticated":true`) {
		t.Fatalf("expected an open session got %s", rec.Body.String())
	}
	if rec := env.do(t, http.MethodGet, "/documents", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/logout", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected logout 200 got %d", rec.Code)
	}
	// the old cookie dies with the shop flag
	if rec := env.do(t, http.MethodGet, "/documents", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	env := setupE2E(t, "2-M")
	bad := map[string]string{"username": "admin", "password": "x"}
	for i := 0; i < 2; i++ {
		if rec := env.do(t, http.MethodPost, "/login", bad); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401 got %d", i+1, rec.Code)
		}
	}
	rec := env.do(t, http.MethodPost, "/login", bad)
	if rec.Code != http.StatusTooManyRequests || !strings.Contains(rec.Body.String(), "too_many_requests") {
		t.Fatalf("expected 429 got %d %s", rec.Code, rec.Body.String())
	}
}

func TestQuotationLifecycle(t *testing.T) {
	env := setupE2E(t, "100-M")
	env.login(t)

	rec := env.do(t, http.MethodPost, "/documents", map[string]any{
		"clientName": "Bilal Traders",
		"docType":    "QUOTATION",
		"selections": []map[string]any{
			{"source": "inventory", "id": "1", "width": 24, "height": 36},
			{"source": "service", "id": "s1"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	qt := decodeDoc(t, rec)
	if qt.Amount != 1010 || qt.Status != models.DocumentStatusPendingApproval || !strings.HasPrefix(qt.Number, "QT-") {
		t.Fatalf("unexpected quotation %+v", qt)
	}

	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/items/0", map[string]any{"field": "height", "value": 72})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if doc := decodeDoc(t, rec); doc.Amount != 1820 {
		t.Fatalf("expected 12 sq ft × 135 + 200 = 1820 got %v", doc.Amount)
	}

	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/items/1/delete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/items/0/delete", nil)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "empty_document") {
		t.Fatalf("expected 400 empty_document got %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/assign", map[string]string{"workerId": "w3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if w, _ := env.shop.Worker("w3"); w.Status != models.WorkerOnDuty {
		t.Fatalf("expected w3 On Duty got %s", w.Status)
	}

	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/convert", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	inv := decodeDoc(t, rec)
	if inv.Number != "INV-"+strings.TrimPrefix(qt.Number, "QT-") || inv.Status != models.DocumentStatusUnpaid {
		t.Fatalf("unexpected converted document %+v", inv)
	}
	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/convert", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second conversion got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/status", map[string]string{"status": "PAID"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/documents/"+qt.ID+"/status", map[string]string{"status": "LOST"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/reports/summary", nil)
	var summary services.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Revenue != 810+1620 || summary.InvoiceCount != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	rec = env.do(t, http.MethodGet, "/metrics", nil)
	if !strings.Contains(rec.Body.String(), `glasspro_document_events_total{event="converted",type="INVOICE"} 1`) {
		t.Fatalf("expected conversion metric in exposition")
	}
}

func TestCreateDocumentValidation(t *testing.T) {
	env := setupE2E(t, "100-M")
	env.login(t)
	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"no items", map[string]any{"clientName": "x"}, "empty_document"},
		{"no client", map[string]any{"selections": []map[string]any{{"source": "service", "id": "s1"}}}, "validation_failed"},
		{"unknown item", map[string]any{"clientName": "x", "selections": []map[string]any{{"source": "inventory", "id": "zz"}}}, "item_not_found"},
		{"unknown field", map[string]any{"clientName": "x", "discount": 5}, "invalid_json"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/documents", c.body)
			if !strings.Contains(rec.Body.String(), c.code) {
				t.Fatalf("expected %s got %d %s", c.code, rec.Code, rec.Body.String())
			}
		})
	}
	if n := len(env.shop.Documents(services.DocumentFilter{})); n != 1 {
		t.Fatalf("rejected documents must not be stored, have %d", n)
	}
}

func TestDownloads(t *testing.T) {
	env := setupE2E(t, "100-M")
	env.login(t)
	rec := env.do(t, http.MethodGet, "/documents/1/pdf", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected a PDF got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF bytes")
	}
	if rec := env.do(t, http.MethodGet, "/documents/missing/pdf", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/reports/export", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != exportContentType {
		t.Fatalf("expected xlsx got %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
}

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestInventoryAndWorkers(t *testing.T) {
	env := setupE2E(t, "100-M")
	env.login(t)

	rec := env.do(t, http.MethodGet, "/inventory?q=alu", nil)
	var list struct {
		Items []models.InventoryItem `json:"items"`
		Total int                    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 3 {
		t.Fatalf("expected 3 aluminium matches got %d", list.Total)
	}

	rec = env.do(t, http.MethodPost, "/inventory", map[string]any{"name": "x", "sku": "X", "unit": "litre", "category": "x"})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"unit":"invalid_choice"`) {
		t.Fatalf("expected unit violation got %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/workers", map[string]any{"name": "Imran", "phone": "0300-1234567", "role": "Polisher"})
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), "+923001234567") {
		t.Fatalf("expected normalised phone got %d %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, http.MethodPost, "/workers/w1/delete", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/workers/w1/jobs", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
