package event

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/pkg/events"
)

const (
	AggregateTypeInvoice = "Invoice"
	AggregateTypePayment = "Payment"
)

// InvoiceCreated is emitted when a new invoice is written to the ledger.
type InvoiceCreated struct {
	events.BaseEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OutletID   uuid.UUID       `json:"outlet_id"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Status     string          `json:"status"`
}

func NewInvoiceCreated(invoiceID, customerID, outletID uuid.UUID, total, amountPaid decimal.Decimal, status string) InvoiceCreated {
	payload, _ := json.Marshal(struct {
		InvoiceID  uuid.UUID       `json:"invoice_id"`
		CustomerID uuid.UUID       `json:"customer_id"`
		OutletID   uuid.UUID       `json:"outlet_id"`
		Total      decimal.Decimal `json:"total"`
		AmountPaid decimal.Decimal `json:"amount_paid"`
		Status     string          `json:"status"`
	}{invoiceID, customerID, outletID, total, amountPaid, status})

	return InvoiceCreated{
		BaseEvent:  events.NewBaseEvent("invoice.created", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		OutletID:   outletID,
		Total:      total,
		AmountPaid: amountPaid,
		Status:     status,
	}
}

// InvoiceEdited is emitted when an invoice's line items or paid amount change.
type InvoiceEdited struct {
	events.BaseEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Status     string          `json:"status"`
}

func NewInvoiceEdited(invoiceID uuid.UUID, total, amountPaid decimal.Decimal, status string) InvoiceEdited {
	payload, _ := json.Marshal(struct {
		InvoiceID  uuid.UUID       `json:"invoice_id"`
		Total      decimal.Decimal `json:"total"`
		AmountPaid decimal.Decimal `json:"amount_paid"`
		Status     string          `json:"status"`
	}{invoiceID, total, amountPaid, status})

	return InvoiceEdited{
		BaseEvent:  events.NewBaseEvent("invoice.edited", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID:  invoiceID,
		Total:      total,
		AmountPaid: amountPaid,
		Status:     status,
	}
}

// InvoiceDeleted is emitted when an unpaid invoice is removed and its
// stock and customer effects reversed.
type InvoiceDeleted struct {
	events.BaseEvent
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
}

func NewInvoiceDeleted(invoiceID, customerID uuid.UUID, total decimal.Decimal) InvoiceDeleted {
	payload, _ := json.Marshal(struct {
		InvoiceID  uuid.UUID       `json:"invoice_id"`
		CustomerID uuid.UUID       `json:"customer_id"`
		Total      decimal.Decimal `json:"total"`
	}{invoiceID, customerID, total})

	return InvoiceDeleted{
		BaseEvent:  events.NewBaseEvent("invoice.deleted", invoiceID, AggregateTypeInvoice, payload),
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Total:      total,
	}
}

// PaymentRecorded is emitted when a payment and its ledger effects commit.
type PaymentRecorded struct {
	events.BaseEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	InvoiceID  *uuid.UUID      `json:"invoice_id,omitempty"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
}

func NewPaymentRecorded(paymentID uuid.UUID, invoiceID *uuid.UUID, customerID uuid.UUID, amount decimal.Decimal, method string) PaymentRecorded {
	payload, _ := json.Marshal(struct {
		PaymentID  uuid.UUID       `json:"payment_id"`
		InvoiceID  *uuid.UUID      `json:"invoice_id,omitempty"`
		CustomerID uuid.UUID       `json:"customer_id"`
		Amount     decimal.Decimal `json:"amount"`
		Method     string          `json:"method"`
	}{paymentID, invoiceID, customerID, amount, method})

	return PaymentRecorded{
		BaseEvent:  events.NewBaseEvent("payment.recorded", paymentID, AggregateTypePayment, payload),
		PaymentID:  paymentID,
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Amount:     amount,
		Method:     method,
	}
}

// PaymentEdited is emitted after a payment's prior effect is rolled back
// and its new amount applied.
type PaymentEdited struct {
	events.BaseEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	OldAmount decimal.Decimal `json:"old_amount"`
	NewAmount decimal.Decimal `json:"new_amount"`
}

func NewPaymentEdited(paymentID uuid.UUID, oldAmount, newAmount decimal.Decimal) PaymentEdited {
	payload, _ := json.Marshal(struct {
		PaymentID uuid.UUID       `json:"payment_id"`
		OldAmount decimal.Decimal `json:"old_amount"`
		NewAmount decimal.Decimal `json:"new_amount"`
	}{paymentID, oldAmount, newAmount})

	return PaymentEdited{
		BaseEvent: events.NewBaseEvent("payment.edited", paymentID, AggregateTypePayment, payload),
		PaymentID: paymentID,
		OldAmount: oldAmount,
		NewAmount: newAmount,
	}
}

// PaymentDeleted is emitted when a payment inside its delete window is
// removed and its effect reversed.
type PaymentDeleted struct {
	events.BaseEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

func NewPaymentDeleted(paymentID, customerID uuid.UUID, amount decimal.Decimal) PaymentDeleted {
	payload, _ := json.Marshal(struct {
		PaymentID  uuid.UUID       `json:"payment_id"`
		CustomerID uuid.UUID       `json:"customer_id"`
		Amount     decimal.Decimal `json:"amount"`
	}{paymentID, customerID, amount})

	return PaymentDeleted{
		BaseEvent:  events.NewBaseEvent("payment.deleted", paymentID, AggregateTypePayment, payload),
		PaymentID:  paymentID,
		CustomerID: customerID,
		Amount:     amount,
	}
}
