package models

import "strings"

// LineKind classifies a line item for area pricing and profit reporting.
type LineKind string

const (
	LineKindGlass    LineKind = "glass"
	LineKindAluminum LineKind = "aluminum"
	LineKindService  LineKind = "service"
)

// SquareInchesPerSquareFoot converts width×height in inches to square feet.
const SquareInchesPerSquareFoot = 144

// LineItem represents one priced entry within a document.
// CostPriceAtTime is captured when the item is added and never recalculated.
type LineItem struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Quantity        float64  `json:"quantity"`
	UnitPrice       float64  `json:"unitPrice"`
	CostPriceAtTime float64  `json:"costPriceAtTime"`
	Kind            LineKind `json:"type"`
	Width           *float64 `json:"width,omitempty"`
	Height          *float64 `json:"height,omitempty"`
}

// Total calculates the extended price of the line.
func (item *LineItem) Total() float64 {
	return item.Quantity * item.UnitPrice
}

// Cost calculates the cost of goods for the line.
func (item *LineItem) Cost() float64 {
	return item.Quantity * item.CostPriceAtTime
}

// Profit returns the line's contribution to per-category profit.
// Service labour cost is not modelled, so services count their full price.
func (item *LineItem) Profit() float64 {
	if item.Kind == LineKindService {
		return item.Total()
	}
	return item.Quantity * (item.UnitPrice - item.CostPriceAtTime)
}

// Dimensions returns width and height, treating absent values as zero.
func (item *LineItem) Dimensions() (w, h float64) {
	if item.Width != nil {
		w = *item.Width
	}
	if item.Height != nil {
		h = *item.Height
	}
	return w, h
}

// Total sums quantity × unit price over items. No rounding is applied.
func Total(items []LineItem) float64 {
	var total float64
	for i := range items {
		total += items[i].Total()
	}
	return total
}

// ClassifyCategory maps a catalog category to a line kind.
// Glass matching is case-insensitive; "Aluminum" must match exactly.
func ClassifyCategory(category string) LineKind {
	lower := strings.ToLower(category)
	if strings.Contains(lower, "glass") || strings.Contains(lower, "tinted") || strings.Contains(lower, "mirror") {
		return LineKindGlass
	}
	if strings.Contains(category, "Aluminum") {
		return LineKindAluminum
	}
	return LineKindService
}
