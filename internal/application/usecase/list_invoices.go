package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListInvoices handles paginated listing of invoices by customer or
// outlet.
type ListInvoices struct {
	invoiceRepo port.InvoiceRepository
}

func NewListInvoices(invoiceRepo port.InvoiceRepository) *ListInvoices {
	return &ListInvoices{invoiceRepo: invoiceRepo}
}

func (uc *ListInvoices) Execute(ctx context.Context, req dto.ListInvoicesRequest) (dto.ListInvoicesResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		invoices []model.Invoice
		total    int
		err      error
	)
	switch {
	case req.CustomerID != uuid.Nil:
		invoices, total, err = uc.invoiceRepo.ListByCustomer(ctx, req.CustomerID, pageSize, offset)
	case req.OutletID != uuid.Nil:
		invoices, total, err = uc.invoiceRepo.ListByOutlet(ctx, req.OutletID, pageSize, offset)
	default:
		return dto.ListInvoicesResponse{}, fmt.Errorf("either customer ID or outlet ID is required")
	}
	if err != nil {
		return dto.ListInvoicesResponse{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := dto.ListInvoicesResponse{
		Invoices:   make([]dto.InvoiceResponse, 0, len(invoices)),
		TotalCount: total,
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
	}
	return resp, nil
}
