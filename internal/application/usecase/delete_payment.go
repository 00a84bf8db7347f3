package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/port"
)

// DeletePayment removes a payment inside its delete window and reverses
// its effect on the customer and the linked invoice.
type DeletePayment struct {
	coordinator  port.TransactionCoordinator
	paymentRepo  port.PaymentRepository
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	window       time.Duration
}

func NewDeletePayment(
	coordinator port.TransactionCoordinator,
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	window time.Duration,
) *DeletePayment {
	return &DeletePayment{
		coordinator:  coordinator,
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		window:       window,
	}
}

func (uc *DeletePayment) Execute(ctx context.Context, req dto.DeletePaymentRequest) error {
	return uc.coordinator.Run(ctx, func(ctx context.Context) error {
		payment, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		deleted, err := payment.Delete(now, uc.window)
		if err != nil {
			return err
		}

		customer, err := uc.customerRepo.FindByID(ctx, payment.CustomerID())
		if err != nil {
			return err
		}
		customer = customer.RollbackPayment(payment.Amount(), now)
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		if id := payment.InvoiceID(); id != nil {
			invoice, err := uc.invoiceRepo.FindByID(ctx, *id)
			if err != nil {
				return err
			}
			invoice = invoice.ApplyPaymentDelta(payment.Amount().Neg(), now)
			if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
				return fmt.Errorf("failed to save invoice: %w", err)
			}
		}

		if err := uc.paymentRepo.Delete(ctx, deleted); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
		return nil
	})
}
