package services

import (
	"math"
	"testing"

	"github.com/diewo77/glasspro/internal/models"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarizeSeed(t *testing.T) {
	s := Summarize(SeedDocuments(), SeedInventory())
	if s.Revenue != 810 || s.CostOfGoods != 510 || s.GrossProfit != 300 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if !near(s.NetMarginPercent, 300.0/810*100) {
		t.Fatalf("unexpected margin %v", s.NetMarginPercent)
	}
	if s.Profit.Glass != 300 || s.Profit.Aluminum != 0 || s.Profit.Service != 0 {
		t.Fatalf("unexpected category profit %+v", s.Profit)
	}
	if s.PendingAmount != 0 {
		t.Fatalf("paid invoice must not be pending, got %v", s.PendingAmount)
	}
	if s.InventoryValue != 636100 {
		t.Fatalf("expected inventory value 636100 got %v", s.InventoryValue)
	}
	if s.InvoiceCount != 1 || len(s.Recent) != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.NetMarginPercent != 0 || s.Revenue != 0 {
		t.Fatalf("expected zero summary got %+v", s)
	}
	if s.Recent == nil {
		t.Fatalf("recent documents should encode as an empty list")
	}
}

func TestSummarizeMixed(t *testing.T) {
	docs := []models.Document{
		{Type: models.DocumentTypeQuotation, Status: models.DocumentStatusPendingApproval, Amount: 500,
			Items: []models.LineItem{{Quantity: 1, UnitPrice: 500, CostPriceAtTime: 100, Kind: models.LineKindAluminum}}},
		{Type: models.DocumentTypeInvoice, Status: models.DocumentStatusUnpaid, Amount: 485,
			Items: []models.LineItem{
				{Quantity: 1, UnitPrice: 285, CostPriceAtTime: 195, Kind: models.LineKindAluminum},
				{Quantity: 1, UnitPrice: 200, Kind: models.LineKindService},
			}},
		{Type: models.DocumentTypeInvoice, Status: models.DocumentStatusOverdue, Amount: 100,
			Items: []models.LineItem{{Quantity: 2, UnitPrice: 50, Kind: models.LineKindService}}},
	}
	s := Summarize(docs, nil)
	if s.Revenue != 585 {
		t.Fatalf("quotations must not count as revenue, got %v", s.Revenue)
	}
	if s.CostOfGoods != 195 {
		t.Fatalf("expected cost 195 got %v", s.CostOfGoods)
	}
	if s.Profit.Aluminum != 90 || s.Profit.Service != 300 {
		t.Fatalf("unexpected category profit %+v", s.Profit)
	}
	if s.PendingAmount != 985 {
		t.Fatalf("expected pending 985 (unpaid + pending approval) got %v", s.PendingAmount)
	}
	if s.QuotationCount != 1 || s.InvoiceCount != 2 {
		t.Fatalf("unexpected counts %+v", s)
	}
}

func TestSummarizeRecentLimit(t *testing.T) {
	docs := make([]models.Document, RecentLimit+3)
	for i := range docs {
		docs[i] = models.Document{ID: string(rune('a' + i)), Type: models.DocumentTypeInvoice}
	}
	s := Summarize(docs, nil)
	if len(s.Recent) != RecentLimit || s.Recent[0].ID != "a" {
		t.Fatalf("expected first %d documents got %d", RecentLimit, len(s.Recent))
	}
}
