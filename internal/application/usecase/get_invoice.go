package usecase

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

// GetInvoice handles retrieval of a single invoice by ID.
type GetInvoice struct {
	invoiceRepo port.InvoiceRepository
}

func NewGetInvoice(invoiceRepo port.InvoiceRepository) *GetInvoice {
	return &GetInvoice{invoiceRepo: invoiceRepo}
}

func (uc *GetInvoice) Execute(ctx context.Context, req dto.GetInvoiceRequest) (dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return dto.InvoiceResponse{}, fmt.Errorf("failed to find invoice: %w", err)
	}
	return toInvoiceResponse(invoice), nil
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.Items()))
	for _, item := range inv.Items() {
		items = append(items, dto.LineItemResponse{
			ProductID: item.ProductID(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}
	return dto.InvoiceResponse{
		ID:         inv.ID(),
		CustomerID: inv.CustomerID(),
		OutletID:   inv.OutletID(),
		Items:      items,
		Subtotal:   inv.Subtotal(),
		Tax:        inv.Tax(),
		Total:      inv.Total(),
		AmountPaid: inv.AmountPaid(),
		Balance:    inv.Balance(),
		Status:     inv.Status().String(),
		Version:    inv.Version(),
		CreatedAt:  inv.CreatedAt(),
		UpdatedAt:  inv.UpdatedAt(),
	}
}
