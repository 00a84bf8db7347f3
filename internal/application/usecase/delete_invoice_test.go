package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/application/usecase"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

type deleteInvoiceFixture struct {
	uc           *usecase.DeleteInvoice
	invoiceRepo  *mockInvoiceRepo
	paymentRepo  *mockPaymentRepo
	customerRepo *mockCustomerRepo
	stock        *mockStockLedger
	invoice      model.Invoice
}

func newDeleteInvoiceFixture(t *testing.T) deleteInvoiceFixture {
	t.Helper()
	customer := testCustomer(t)
	invoice := existingInvoice(t, customer.ID()) // total 1000, paid 400
	customer = customer.RecordSale(invoice.Total(), invoice.AmountPaid(), time.Now().UTC())

	invoiceRepo := &mockInvoiceRepo{
		findByIDFunc: func(_ context.Context, id uuid.UUID) (model.Invoice, error) {
			if id == invoice.ID() {
				return invoice, nil
			}
			return model.Invoice{}, port.ErrInvoiceNotFound
		},
	}
	paymentRepo := &mockPaymentRepo{}
	customerRepo := &mockCustomerRepo{
		findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Customer, error) {
			return customer, nil
		},
	}
	stock := &mockStockLedger{}

	uc := usecase.NewDeleteInvoice(&mockCoordinator{}, invoiceRepo, paymentRepo, customerRepo, stock)
	return deleteInvoiceFixture{uc, invoiceRepo, paymentRepo, customerRepo, stock, invoice}
}

func TestDeleteInvoice_Success(t *testing.T) {
	f := newDeleteInvoiceFixture(t)

	err := f.uc.Execute(context.Background(), dto.DeleteInvoiceRequest{InvoiceID: f.invoice.ID()})
	require.NoError(t, err)

	require.Len(t, f.invoiceRepo.deleted, 1)
	assert.Equal(t, f.invoice.ID(), f.invoiceRepo.deleted[0].ID())

	// Stock restored for every line.
	require.Len(t, f.stock.calls, 2)
	for _, c := range f.stock.calls {
		assert.True(t, c.release)
	}

	// The customer's position reversed per the invoice-deletion formula:
	// starting from sales 1000 / debt 600, removing a 400-paid invoice
	// lands at debt 200 and credit 400.
	require.Len(t, f.customerRepo.saved, 1)
	saved := f.customerRepo.saved[0]
	assert.True(t, saved.TotalSales().IsZero())
	assert.True(t, saved.CurrentDebt().Equal(decimal.NewFromInt(200)), "debt = %s", saved.CurrentDebt())
	assert.True(t, saved.CreditBalance().Equal(decimal.NewFromInt(400)), "credit = %s", saved.CreditBalance())
}

func TestDeleteInvoice_HasExistingPayment(t *testing.T) {
	f := newDeleteInvoiceFixture(t)
	f.paymentRepo.existsForInvoiceFunc = func(_ context.Context, _ uuid.UUID) (bool, error) {
		return true, nil
	}

	err := f.uc.Execute(context.Background(), dto.DeleteInvoiceRequest{InvoiceID: f.invoice.ID()})

	assert.ErrorIs(t, err, model.ErrHasExistingPayment)
	assert.Empty(t, f.invoiceRepo.deleted)
	assert.Empty(t, f.stock.calls)
	assert.Empty(t, f.customerRepo.saved)
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	f := newDeleteInvoiceFixture(t)

	err := f.uc.Execute(context.Background(), dto.DeleteInvoiceRequest{InvoiceID: uuid.New()})

	assert.ErrorIs(t, err, port.ErrInvoiceNotFound)
	assert.Empty(t, f.invoiceRepo.deleted)
}
