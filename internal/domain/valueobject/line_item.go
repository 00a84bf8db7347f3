package valueobject

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a single product position on an invoice. The subtotal is
// computed once at construction and never stored independently of the
// unit price and quantity.
type LineItem struct {
	productID uuid.UUID
	unitPrice decimal.Decimal
	quantity  int
	subtotal  decimal.Decimal
}

// NewLineItem creates a LineItem after validating the product reference,
// price and quantity.
func NewLineItem(productID uuid.UUID, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, fmt.Errorf("product ID is required")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("unit price cannot be negative, got: %s", unitPrice.String())
	}
	if quantity <= 0 {
		return LineItem{}, fmt.Errorf("quantity must be positive, got: %d", quantity)
	}

	return LineItem{
		productID: productID,
		unitPrice: unitPrice,
		quantity:  quantity,
		subtotal:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// ProductID returns the referenced product identifier.
func (li LineItem) ProductID() uuid.UUID {
	return li.productID
}

// UnitPrice returns the price per unit.
func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// Quantity returns the number of units.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.subtotal
}

// TotalOf sums the subtotals of the given line items.
func TotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.subtotal)
	}
	return total
}
