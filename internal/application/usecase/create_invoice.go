package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
)

// CreateInvoice handles invoice creation: stock reservation, totals
// computation, the customer's sales/debt/credit adjustment and an
// optional first payment, all inside one transaction.
type CreateInvoice struct {
	coordinator  port.TransactionCoordinator
	invoiceRepo  port.InvoiceRepository
	paymentRepo  port.PaymentRepository
	customerRepo port.CustomerRepository
	outletRepo   port.OutletRepository
	productRepo  port.ProductRepository
	stock        port.StockLedger
	taxRate      decimal.Decimal
}

func NewCreateInvoice(
	coordinator port.TransactionCoordinator,
	invoiceRepo port.InvoiceRepository,
	paymentRepo port.PaymentRepository,
	customerRepo port.CustomerRepository,
	outletRepo port.OutletRepository,
	productRepo port.ProductRepository,
	stock port.StockLedger,
	taxRate decimal.Decimal,
) *CreateInvoice {
	return &CreateInvoice{
		coordinator:  coordinator,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		outletRepo:   outletRepo,
		productRepo:  productRepo,
		stock:        stock,
		taxRate:      taxRate,
	}
}

func (uc *CreateInvoice) Execute(ctx context.Context, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error) {
	if len(req.Items) == 0 {
		return dto.InvoiceResponse{}, model.ErrItemsRequired
	}

	var method valueobject.PaymentMethod
	if req.AmountPaid.IsPositive() {
		var err error
		method, err = valueobject.NewPaymentMethod(req.Method)
		if err != nil {
			return dto.InvoiceResponse{}, fmt.Errorf("invalid payment method: %w", err)
		}
	}

	var invoice model.Invoice
	err := uc.coordinator.Run(ctx, func(ctx context.Context) error {
		if err := uc.outletRepo.Exists(ctx, req.OutletID); err != nil {
			return err
		}
		customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		items, err := reserveLineItems(ctx, uc.productRepo, uc.stock, req.Items)
		if err != nil {
			return err
		}

		invoice, err = model.NewInvoice(req.CustomerID, req.OutletID, items, req.AmountPaid, uc.taxRate)
		if err != nil {
			return err
		}
		if err := uc.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		// The initial payment's effect on debt and credit is already
		// embodied in RecordSale below; only the row is written here so
		// later edits and deletions can roll it back individually.
		if req.AmountPaid.IsPositive() {
			invoiceID := invoice.ID()
			payment, err := model.NewPayment(&invoiceID, req.CustomerID, req.AmountPaid, method)
			if err != nil {
				return err
			}
			if err := uc.paymentRepo.Save(ctx, payment); err != nil {
				return fmt.Errorf("failed to save initial payment: %w", err)
			}
		}

		customer = customer.RecordSale(invoice.Total(), invoice.AmountPaid(), invoice.CreatedAt())
		if err := uc.customerRepo.Save(ctx, customer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.InvoiceResponse{}, err
	}

	return toInvoiceResponse(invoice), nil
}

// reserveLineItems resolves each requested line against the catalog,
// reserves its stock and prices it at the product's current unit price.
func reserveLineItems(
	ctx context.Context,
	productRepo port.ProductRepository,
	stock port.StockLedger,
	reqs []dto.LineItemRequest,
) ([]valueobject.LineItem, error) {
	items := make([]valueobject.LineItem, 0, len(reqs))
	for _, r := range reqs {
		product, err := productRepo.FindByID(ctx, r.ProductID)
		if err != nil {
			return nil, err
		}
		if err := stock.Reserve(ctx, r.ProductID, r.Quantity); err != nil {
			return nil, err
		}
		item, err := valueobject.NewLineItem(r.ProductID, product.Price, r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid line item for product %s: %w", r.ProductID, err)
		}
		items = append(items, item)
	}
	return items, nil
}
