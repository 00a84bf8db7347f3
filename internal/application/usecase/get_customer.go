package usecase

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

// GetCustomer handles retrieval of a customer's financial position.
type GetCustomer struct {
	customerRepo port.CustomerRepository
}

func NewGetCustomer(customerRepo port.CustomerRepository) *GetCustomer {
	return &GetCustomer{customerRepo: customerRepo}
}

func (uc *GetCustomer) Execute(ctx context.Context, req dto.GetCustomerRequest) (dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return dto.CustomerResponse{}, fmt.Errorf("failed to find customer: %w", err)
	}
	return toCustomerResponse(customer), nil
}

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID(),
		Name:          c.Name(),
		TotalSales:    c.TotalSales(),
		CurrentDebt:   c.CurrentDebt(),
		CreditBalance: c.CreditBalance(),
		Version:       c.Version(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}
