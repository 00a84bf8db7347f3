package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetCustomerRequest is the input DTO for retrieving a customer's
// financial position.
type GetCustomerRequest struct {
	CustomerID uuid.UUID
}

// CustomerResponse is the output DTO for a customer account.
type CustomerResponse struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Name          string
	TotalSales    decimal.Decimal
	CurrentDebt   decimal.Decimal
	CreditBalance decimal.Decimal
	Version       int
	ID            uuid.UUID
}
