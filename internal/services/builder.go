package services

import (
	"fmt"
	"strconv"

	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/validation"
	"github.com/google/uuid"
)

// LineField names an editable line item field for UpdateLineItem.
type LineField string

const (
	FieldDescription LineField = "description"
	FieldQuantity    LineField = "quantity"
	FieldUnitPrice   LineField = "unitPrice"
	FieldWidth       LineField = "width"
	FieldHeight      LineField = "height"
)

// Builder assembles the line items of a document.
// Glass items keep Quantity equal to Width×Height/144 whenever both are positive.
type Builder struct {
	items []models.LineItem
	newID func() string
}

// NewBuilder starts from a copy of items (nil for a new document).
func NewBuilder(items []models.LineItem) *Builder {
	return &Builder{items: append([]models.LineItem(nil), items...), newID: uuid.NewString}
}

// Items returns a copy of the current line items.
func (b *Builder) Items() []models.LineItem {
	return append([]models.LineItem(nil), b.items...)
}

// Len returns the number of line items.
func (b *Builder) Len() int { return len(b.items) }

// Total is Σ quantity × unit price over the current items.
func (b *Builder) Total() float64 { return models.Total(b.items) }

// AddCatalogSelection appends a line for entry and returns its index.
// Glass starts at quantity 0 until both dimensions are known; everything else at 1.
func (b *Builder) AddCatalogSelection(entry models.CatalogEntry) int {
	kind := models.ClassifyCategory(entry.Category)
	item := models.LineItem{
		ID:              b.newID(),
		Description:     entry.Name,
		Quantity:        1,
		UnitPrice:       entry.Price,
		CostPriceAtTime: entry.CostPrice,
		Kind:            kind,
	}
	if kind == models.LineKindGlass {
		var w, h float64
		item.Quantity = 0
		item.Width, item.Height = &w, &h
	}
	b.items = append(b.items, item)
	return len(b.items) - 1
}

func (b *Builder) at(i int) (*models.LineItem, error) {
	if i < 0 || i >= len(b.items) {
		return nil, fmt.Errorf("%w: %d", ErrLineItemIndex, i)
	}
	return &b.items[i], nil
}

// SetWidth sets the width (inches) and refreshes the glass area.
func (b *Builder) SetWidth(i int, width float64) error {
	item, err := b.at(i)
	if err != nil {
		return err
	}
	item.Width = &width
	recomputeArea(item)
	return nil
}

// SetHeight sets the height (inches) and refreshes the glass area.
func (b *Builder) SetHeight(i int, height float64) error {
	item, err := b.at(i)
	if err != nil {
		return err
	}
	item.Height = &height
	recomputeArea(item)
	return nil
}

// recomputeArea leaves the quantity alone unless both dimensions are positive.
func recomputeArea(item *models.LineItem) {
	if item.Kind != models.LineKindGlass {
		return
	}
	w, h := item.Dimensions()
	if w > 0 && h > 0 {
		item.Quantity = w * h / models.SquareInchesPerSquareFoot
	}
}

func (b *Builder) SetQuantity(i int, qty float64) error {
	item, err := b.at(i)
	if err != nil {
		return err
	}
	item.Quantity = qty
	return nil
}

func (b *Builder) SetUnitPrice(i int, price float64) error {
	item, err := b.at(i)
	if err != nil {
		return err
	}
	item.UnitPrice = price
	return nil
}

func (b *Builder) SetDescription(i int, desc string) error {
	item, err := b.at(i)
	if err != nil {
		return err
	}
	item.Description = desc
	return nil
}

// UpdateLineItem dispatches a field/value pair to the typed setters.
// Numeric fields must parse as non-negative floats.
func (b *Builder) UpdateLineItem(i int, field LineField, value string) error {
	if field == FieldDescription {
		return b.SetDescription(i, value)
	}
	var set func(int, float64) error
	switch field {
	case FieldQuantity:
		set = b.SetQuantity
	case FieldUnitPrice:
		set = b.SetUnitPrice
	case FieldWidth:
		set = b.SetWidth
	case FieldHeight:
		set = b.SetHeight
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	v := validation.Violations{}
	validation.NonNegativeFloat(string(field), f, v)
	if !v.Empty() {
		return v
	}
	return set(i, f)
}

// RemoveLineItem drops the item at index i, keeping the order of the rest.
func (b *Builder) RemoveLineItem(i int) error {
	if _, err := b.at(i); err != nil {
		return err
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return nil
}
