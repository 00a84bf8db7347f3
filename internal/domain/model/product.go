package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog-owned entity; the ledger only reads its price and
// adjusts its stock. Stock never goes negative: a reservation beyond the
// available quantity fails the whole enclosing transaction.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Stock int
}
