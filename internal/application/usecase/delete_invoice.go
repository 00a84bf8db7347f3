package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

// DeleteInvoice removes an invoice that no payment references, restoring
// its stock and reversing its effect on the customer's position.
type DeleteInvoice struct {
	coordinator  port.TransactionCoordinator
	invoiceRepo  port.InvoiceRepository
	paymentRepo  port.PaymentRepository
	customerRepo port.CustomerRepository
	stock        port.StockLedger
}

func NewDeleteInvoice(
	coordinator port.TransactionCoordinator,
	invoiceRepo port.InvoiceRepository,
	paymentRepo port.PaymentRepository,
	customerRepo port.CustomerRepository,
	stock port.StockLedger,
) *DeleteInvoice {
	return &DeleteInvoice{
		coordinator:  coordinator,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		stock:        stock,
	}
}

func (uc *DeleteInvoice) Execute(ctx context.Context, req dto.DeleteInvoiceRequest) error {
	return uc.coordinator.Run(ctx, func(ctx context.Context) error {
		invoice, err := uc.invoiceRepo.FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		hasPayment, err := uc.paymentRepo.ExistsForInvoice(ctx, invoice.ID())
		if err != nil {
			return fmt.Errorf("failed to check payments: %w", err)
		}
		if hasPayment {
			return model.ErrHasExistingPayment
		}

		for _, item := range invoice.Items() {
			if err := uc.stock.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}

		customer, err := uc.customerRepo.FindByID(ctx, invoice.CustomerID())
		if err != nil {
			return err
		}
		customer = customer.ReverseInvoiceDeletion(invoice.AmountPaid(), invoice.Total(), time.Now().UTC())
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		if err := uc.invoiceRepo.Delete(ctx, invoice); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return nil
	})
}
