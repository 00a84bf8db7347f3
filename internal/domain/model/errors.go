package model

import "errors"

// Business-rule sentinels. The presentation layer branches on these with
// errors.Is to return a distinct status per rule, so clients can tell
// "insufficient stock" apart from a generic failure.
var (
	// ErrItemsRequired is returned when an invoice is created or edited
	// with an empty line-item set.
	ErrItemsRequired = errors.New("invoice requires at least one line item")

	// ErrInvalidAmount is returned when a payment amount is zero or negative.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrOutsideDeleteWindow is returned when a payment is deleted after
	// its delete window has elapsed.
	ErrOutsideDeleteWindow = errors.New("payment is outside its delete window")

	// ErrHasExistingPayment is returned when deleting an invoice that a
	// payment still references.
	ErrHasExistingPayment = errors.New("invoice has an existing payment")
)
