package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the input DTO for recording a payment. Receipt
// bytes, when present, are stored only after the ledger transaction
// commits.
type RecordPaymentRequest struct {
	InvoiceID  *uuid.UUID
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Method     string
	Receipt    []byte
}

// PaymentResponse is the output DTO for a payment.
type PaymentResponse struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Method     string
	ReceiptURL string
	Amount     decimal.Decimal
	Version    int
	ID         uuid.UUID
	CustomerID uuid.UUID
	InvoiceID  *uuid.UUID
}

// EditPaymentRequest is the input DTO for editing a payment's amount,
// method and invoice link.
type EditPaymentRequest struct {
	PaymentID uuid.UUID
	InvoiceID *uuid.UUID
	Amount    decimal.Decimal
	Method    string
}

// DeletePaymentRequest is the input DTO for deleting a payment.
type DeletePaymentRequest struct {
	PaymentID uuid.UUID
}
