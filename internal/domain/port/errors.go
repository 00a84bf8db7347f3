package port

import "errors"

// Referential and stock sentinels returned by repositories. Use cases and
// the presentation layer branch on these with errors.Is.
var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOutletNotFound   = errors.New("outlet not found")

	// ErrInsufficientStock is returned by Reserve when a product's stock
	// cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)
