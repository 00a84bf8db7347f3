package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
)

// EditPayment changes a payment's amount, method or invoice link by
// rolling back the prior effect and applying the new one: the customer's
// debt is restored and generated credit clawed back, the old invoice's
// paid amount reduced, then the new amount applied to customer and new
// invoice. All of it commits or aborts as one unit.
type EditPayment struct {
	coordinator  port.TransactionCoordinator
	paymentRepo  port.PaymentRepository
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
}

func NewEditPayment(
	coordinator port.TransactionCoordinator,
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
) *EditPayment {
	return &EditPayment{
		coordinator:  coordinator,
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

func (uc *EditPayment) Execute(ctx context.Context, req dto.EditPaymentRequest) (dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return dto.PaymentResponse{}, model.ErrInvalidAmount
	}
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("invalid payment method: %w", err)
	}

	var payment model.Payment
	err = uc.coordinator.Run(ctx, func(ctx context.Context) error {
		old, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}
		customer, err := uc.customerRepo.FindByID(ctx, old.CustomerID())
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		// Rollback the prior effect before applying the new one.
		customer = customer.RollbackPayment(old.Amount(), now)
		customer = customer.ApplyPayment(req.Amount, now)
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		// The old and new link may point at the same invoice; both
		// deltas then land on one aggregate saved once.
		oldID, newID := old.InvoiceID(), req.InvoiceID
		if oldID != nil && newID != nil && *oldID == *newID {
			invoice, err := uc.invoiceRepo.FindByID(ctx, *oldID)
			if err != nil {
				return err
			}
			invoice = invoice.ApplyPaymentDelta(req.Amount.Sub(old.Amount()), now)
			if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
				return fmt.Errorf("failed to save invoice: %w", err)
			}
		} else {
			if oldID != nil {
				invoice, err := uc.invoiceRepo.FindByID(ctx, *oldID)
				if err != nil {
					return err
				}
				invoice = invoice.ApplyPaymentDelta(old.Amount().Neg(), now)
				if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
					return fmt.Errorf("failed to save invoice: %w", err)
				}
			}
			if newID != nil {
				invoice, err := uc.invoiceRepo.FindByID(ctx, *newID)
				if err != nil {
					return err
				}
				invoice = invoice.ApplyPaymentDelta(req.Amount, now)
				if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
					return fmt.Errorf("failed to save invoice: %w", err)
				}
			}
		}

		payment, err = old.Edit(req.Amount, method, req.InvoiceID, now)
		if err != nil {
			return err
		}
		if err := uc.paymentRepo.Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	return toPaymentResponse(payment), nil
}
