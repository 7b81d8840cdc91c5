package services

import "github.com/diewo77/glasspro/internal/models"

// CategoryProfit splits profit by line kind.
type CategoryProfit struct {
	Glass    float64 `json:"glass"`
	Aluminum float64 `json:"aluminum"`
	Service  float64 `json:"service"`
}

// Summary is the dashboard/report aggregate. It is derived, never stored.
type Summary struct {
	Revenue          float64           `json:"revenue"`
	CostOfGoods      float64           `json:"costOfGoods"`
	GrossProfit      float64           `json:"grossProfit"`
	NetMarginPercent float64           `json:"netMarginPercent"`
	Profit           CategoryProfit    `json:"profitByCategory"`
	PendingAmount    float64           `json:"pendingAmount"`
	InventoryValue   float64           `json:"inventoryValue"`
	InvoiceCount     int               `json:"invoiceCount"`
	QuotationCount   int               `json:"quotationCount"`
	Recent           []models.Document `json:"recentDocuments"`
}

// RecentLimit is how many documents the summary lists.
const RecentLimit = 5

// Summarize computes the report over docs (most-recent-first) and inventory.
// Revenue, cost and category profit count invoices only; the pending amount
// counts every document that is unpaid or awaiting approval.
func Summarize(docs []models.Document, inventory []models.InventoryItem) Summary {
	var s Summary
	for i := range docs {
		d := &docs[i]
		if d.Status.IsPending() {
			s.PendingAmount += d.Amount
		}
		if !d.IsInvoice() {
			s.QuotationCount++
			continue
		}
		s.InvoiceCount++
		s.Revenue += d.Amount
		for j := range d.Items {
			item := &d.Items[j]
			s.CostOfGoods += item.Cost()
			switch item.Kind {
			case models.LineKindGlass:
				s.Profit.Glass += item.Profit()
			case models.LineKindAluminum:
				s.Profit.Aluminum += item.Profit()
			default:
				s.Profit.Service += item.Profit()
			}
		}
	}
	s.GrossProfit = s.Revenue - s.CostOfGoods
	if s.Revenue != 0 {
		s.NetMarginPercent = s.GrossProfit / s.Revenue * 100
	}
	s.InventoryValue = InventoryValue(inventory)
	n := min(len(docs), RecentLimit)
	s.Recent = append([]models.Document{}, docs[:n]...)
	return s
}

// InventoryValue is Σ stock × cost price.
func InventoryValue(items []models.InventoryItem) float64 {
	var v float64
	for i := range items {
		v += items[i].StockValue()
	}
	return v
}
