package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
)

// RecordPayment writes a payment row and applies its effect to the linked
// invoice (if any) and the customer's debt/credit position atomically.
// Receipt upload happens after the commit so storage latency or failure
// never risks the ledger update.
type RecordPayment struct {
	coordinator  port.TransactionCoordinator
	paymentRepo  port.PaymentRepository
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	receipts     port.ReceiptStore
}

func NewRecordPayment(
	coordinator port.TransactionCoordinator,
	paymentRepo port.PaymentRepository,
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	receipts port.ReceiptStore,
) *RecordPayment {
	return &RecordPayment{
		coordinator:  coordinator,
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		receipts:     receipts,
	}
}

func (uc *RecordPayment) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return dto.PaymentResponse{}, model.ErrInvalidAmount
	}
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("invalid payment method: %w", err)
	}

	var payment model.Payment
	err = uc.coordinator.Run(ctx, func(ctx context.Context) error {
		customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		payment, err = model.NewPayment(req.InvoiceID, req.CustomerID, req.Amount, method)
		if err != nil {
			return err
		}

		now := payment.CreatedAt()
		if req.InvoiceID != nil {
			invoice, err := uc.invoiceRepo.FindByID(ctx, *req.InvoiceID)
			if err != nil {
				return err
			}
			invoice = invoice.ApplyPaymentDelta(req.Amount, now)
			if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
				return fmt.Errorf("failed to save invoice: %w", err)
			}
		}

		customer = customer.ApplyPayment(req.Amount, now)
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		if err := uc.paymentRepo.Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	// Post-commit receipt upload. A failure here leaves the payment
	// valid with an empty receipt URL, to be backfilled separately.
	if len(req.Receipt) > 0 && uc.receipts != nil {
		name := fmt.Sprintf("%s.png", payment.ID())
		url, err := uc.receipts.Store(ctx, name, req.Receipt)
		if err != nil {
			slog.WarnContext(ctx, "receipt upload failed",
				slog.String("payment_id", payment.ID().String()),
				slog.String("error", err.Error()))
		} else {
			payment = payment.AttachReceipt(url, time.Now().UTC())
			if err := uc.paymentRepo.Save(ctx, payment); err != nil {
				slog.WarnContext(ctx, "failed to persist receipt URL",
					slog.String("payment_id", payment.ID().String()),
					slog.String("error", err.Error()))
			}
		}
	}

	return toPaymentResponse(payment), nil
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID(),
		InvoiceID:  p.InvoiceID(),
		CustomerID: p.CustomerID(),
		Amount:     p.Amount(),
		Method:     p.Method().String(),
		ReceiptURL: p.ReceiptURL(),
		Version:    p.Version(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}
