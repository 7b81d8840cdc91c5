package models

import "strings"

// Unit is the selling unit of an inventory item.
type Unit string

const (
	UnitSquareFoot Unit = "sq ft"
	UnitFoot       Unit = "ft"
	UnitKilogram   Unit = "kg"
	UnitPiece      Unit = "pc"
)

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitSquareFoot, UnitFoot, UnitKilogram, UnitPiece:
		return true
	}
	return false
}

// Known inventory categories. Category is free text, these are the seeded ones.
const (
	CategoryPlainGlass       = "Plain Glass"
	CategoryMirror           = "Mirror"
	CategoryToughened        = "Toughened"
	CategoryTinted           = "Tinted"
	CategoryAluminumSection  = "Aluminum Section"
	CategoryAluminumHardware = "Aluminum Hardware"
	CategorySiliconRubber    = "Silicon/Rubber"
)

// InventoryItem is a stocked material.
// Stock is expected to stay non-negative but nothing enforces it.
type InventoryItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" validate:"required"`
	SKU          string   `json:"sku" validate:"required"`
	ThicknessMM  *float64 `json:"thicknessMM,omitempty"`
	CostPrice    float64  `json:"costPrice" validate:"gte=0"`
	PricePerUnit float64  `json:"pricePerSqFt" validate:"gte=0"`
	Stock        float64  `json:"stock"`
	Unit         Unit     `json:"unit" validate:"required,oneof='sq ft' ft kg pc"`
	Category     string   `json:"category" validate:"required"`
	Image        string   `json:"image,omitempty"`
}

// StockValue is the cost value of the item's current stock.
func (i *InventoryItem) StockValue() float64 {
	return i.Stock * i.CostPrice
}

// Matches reports whether the name or SKU contains q, ignoring case.
func (i *InventoryItem) Matches(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(i.Name), q) || strings.Contains(strings.ToLower(i.SKU), q)
}

// Service is a priced workshop service (cutting, polishing, fitting...).
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice" validate:"gte=0"`
	Icon        string  `json:"icon,omitempty"`
}

// CatalogEntry is anything that can be selected into a document.
type CatalogEntry struct {
	Name      string
	Category  string
	Price     float64
	CostPrice float64
}

// Entry converts an inventory item into a catalog entry.
func (i *InventoryItem) Entry() CatalogEntry {
	return CatalogEntry{Name: i.Name, Category: i.Category, Price: i.PricePerUnit, CostPrice: i.CostPrice}
}

// Entry converts a service into a catalog entry. Services carry no cost.
func (s *Service) Entry() CatalogEntry {
	return CatalogEntry{Name: s.Name, Price: s.BasePrice}
}
