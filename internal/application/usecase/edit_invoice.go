package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
)

// EditInvoice replaces an invoice's item set and paid amount. Stock from
// the superseded items is released before the new items are reserved, so
// an edit that redistributes the same quantities always succeeds. The
// customer's position is corrected by reversing the old sale effect and
// recording the new one.
type EditInvoice struct {
	coordinator  port.TransactionCoordinator
	invoiceRepo  port.InvoiceRepository
	paymentRepo  port.PaymentRepository
	customerRepo port.CustomerRepository
	productRepo  port.ProductRepository
	stock        port.StockLedger
	taxRate      decimal.Decimal
}

func NewEditInvoice(
	coordinator port.TransactionCoordinator,
	invoiceRepo port.InvoiceRepository,
	paymentRepo port.PaymentRepository,
	customerRepo port.CustomerRepository,
	productRepo port.ProductRepository,
	stock port.StockLedger,
	taxRate decimal.Decimal,
) *EditInvoice {
	return &EditInvoice{
		coordinator:  coordinator,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		stock:        stock,
		taxRate:      taxRate,
	}
}

func (uc *EditInvoice) Execute(ctx context.Context, req dto.EditInvoiceRequest) (dto.EditInvoiceResponse, error) {
	if len(req.Items) == 0 {
		return dto.EditInvoiceResponse{}, model.ErrItemsRequired
	}

	var (
		invoice model.Invoice
		payment *model.Payment
	)
	err := uc.coordinator.Run(ctx, func(ctx context.Context) error {
		old, err := uc.invoiceRepo.FindByID(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		customer, err := uc.customerRepo.FindByID(ctx, old.CustomerID())
		if err != nil {
			return err
		}

		// Release first, then reserve. Both sides abort together if a
		// reserve fails, leaving stock untouched.
		for _, item := range old.Items() {
			if err := uc.stock.Release(ctx, item.ProductID(), item.Quantity()); err != nil {
				return err
			}
		}
		items, err := reserveLineItems(ctx, uc.productRepo, uc.stock, req.Items)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		invoice, err = old.Recompute(items, req.AmountPaid, uc.taxRate, now)
		if err != nil {
			return err
		}
		if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		customer = customer.ReverseSale(old.Total(), old.AmountPaid(), now)
		customer = customer.RecordSale(invoice.Total(), invoice.AmountPaid(), now)
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		// An edit that raises the paid amount records the difference as
		// its own payment row, keeping every paid unit traceable to a
		// payment that can later be edited or deleted on its own.
		diff := req.AmountPaid.Sub(old.AmountPaid())
		if diff.IsPositive() {
			method, err := valueobject.NewPaymentMethod(req.Method)
			if err != nil {
				return fmt.Errorf("invalid payment method: %w", err)
			}
			invoiceID := invoice.ID()
			p, err := model.NewPayment(&invoiceID, invoice.CustomerID(), diff, method)
			if err != nil {
				return err
			}
			if err := uc.paymentRepo.Save(ctx, p); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			payment = &p
		}
		return nil
	})
	if err != nil {
		return dto.EditInvoiceResponse{}, err
	}

	resp := dto.EditInvoiceResponse{Invoice: toInvoiceResponse(invoice)}
	if payment != nil {
		pr := toPaymentResponse(*payment)
		resp.Payment = &pr
	}
	return resp, nil
}
