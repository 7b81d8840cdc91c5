package models

import (
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		category string
		want     LineKind
	}{
		{"Plain Glass", LineKindGlass},
		{"Tinted", LineKindGlass},
		{"Mirror", LineKindGlass},
		{"toughened GLASS", LineKindGlass},
		{"Aluminum Section", LineKindAluminum},
		{"Aluminum Hardware", LineKindAluminum},
		{"aluminum section", LineKindService},
		{"Silicon/Rubber", LineKindService},
		{"", LineKindService},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := ClassifyCategory(tt.category); got != tt.want {
				t.Errorf("ClassifyCategory(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestLineItem_Totals(t *testing.T) {
	item := &LineItem{Quantity: 6, UnitPrice: 135, CostPriceAtTime: 85, Kind: LineKindGlass}

	// 6 * 135 = 810
	if got := item.Total(); got != 810 {
		t.Errorf("Total() = %f, want 810", got)
	}
	// 6 * 85 = 510
	if got := item.Cost(); got != 510 {
		t.Errorf("Cost() = %f, want 510", got)
	}
	// 6 * (135 - 85) = 300
	if got := item.Profit(); got != 300 {
		t.Errorf("Profit() = %f, want 300", got)
	}
}

func TestLineItem_ServiceProfitIgnoresCost(t *testing.T) {
	item := &LineItem{Quantity: 2, UnitPrice: 50, CostPriceAtTime: 20, Kind: LineKindService}
	if got := item.Profit(); got != 100 {
		t.Errorf("Profit() = %f, want 100", got)
	}
}

func TestLineItem_Dimensions(t *testing.T) {
	item := &LineItem{Width: ptr(24)}
	w, h := item.Dimensions()
	if w != 24 || h != 0 {
		t.Errorf("Dimensions() = (%f, %f), want (24, 0)", w, h)
	}
}

func TestDocument_Recalculate(t *testing.T) {
	doc := &Document{
		Amount: 1,
		Items: []LineItem{
			{Quantity: 2, UnitPrice: 100},
			{Quantity: 1, UnitPrice: 50},
			{Quantity: 0.5, UnitPrice: 10},
		},
	}
	doc.Recalculate()
	if doc.Amount != 255 {
		t.Errorf("Amount = %f, want 255", doc.Amount)
	}
}

func TestDocument_CloneDoesNotAlias(t *testing.T) {
	doc := Document{Items: []LineItem{{Description: "a"}}}
	cp := doc.Clone()
	cp.Items[0].Description = "b"
	if doc.Items[0].Description != "a" {
		t.Fatalf("clone aliased items slice")
	}
}

func TestDocumentType(t *testing.T) {
	tests := []struct {
		typ     DocumentType
		prefix  string
		initial DocumentStatus
	}{
		{DocumentTypeInvoice, "INV", DocumentStatusUnpaid},
		{DocumentTypeQuotation, "QT", DocumentStatusPendingApproval},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.Prefix(); got != tt.prefix {
				t.Errorf("Prefix() = %q, want %q", got, tt.prefix)
			}
			if got := tt.typ.InitialStatus(); got != tt.initial {
				t.Errorf("InitialStatus() = %q, want %q", got, tt.initial)
			}
		})
	}
}

func TestDocumentStatus(t *testing.T) {
	tests := []struct {
		status  DocumentStatus
		valid   bool
		pending bool
	}{
		{DocumentStatusPaid, true, false},
		{DocumentStatusUnpaid, true, true},
		{DocumentStatusOverdue, true, false},
		{DocumentStatusDraft, true, false},
		{DocumentStatusPendingApproval, true, true},
		{"SHIPPED", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.status.IsPending(); got != tt.pending {
				t.Errorf("IsPending() = %v, want %v", got, tt.pending)
			}
		})
	}
}

func TestParseDocumentNumber(t *testing.T) {
	n, err := ParseDocumentNumber("QT-2024-003")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.Prefix != "QT" || n.Year != 2024 || n.Sequence != 3 {
		t.Fatalf("unexpected parts: %#v", n)
	}
	n.Prefix = "INV"
	if got := n.String(); got != "INV-2024-003" {
		t.Errorf("String() = %q, want INV-2024-003", got)
	}

	for _, bad := range []string{"", "QT2024003", "QT-24-003", "QT-2024-x", "-2024-001", "QT-QT-2024-001"} {
		if _, err := ParseDocumentNumber(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDocumentNumber_WideSequence(t *testing.T) {
	n := DocumentNumber{Prefix: "INV", Year: 2026, Sequence: 1234}
	if got := n.String(); got != "INV-2026-1234" {
		t.Errorf("String() = %q, want INV-2026-1234", got)
	}
}

func TestInventoryItem_Matches(t *testing.T) {
	item := &InventoryItem{Name: "5 MM Clear Glass", SKU: "GLS-5MM-CLR"}
	if !item.Matches("clear") || !item.Matches("gls-5") {
		t.Fatalf("expected name and sku matches")
	}
	if item.Matches("bronze") {
		t.Fatalf("unexpected match")
	}
}

func TestInventoryItem_StockValue(t *testing.T) {
	item := &InventoryItem{Stock: 2500, CostPrice: 85}
	if got := item.StockValue(); got != 212500 {
		t.Errorf("StockValue() = %f, want 212500", got)
	}
}
