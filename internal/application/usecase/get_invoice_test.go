package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/application/usecase"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

func TestGetInvoice_Success(t *testing.T) {
	invoice := existingInvoice(t, uuid.New())
	repo := &mockInvoiceRepo{
		findByIDFunc: func(_ context.Context, id uuid.UUID) (model.Invoice, error) {
			if id == invoice.ID() {
				return invoice, nil
			}
			return model.Invoice{}, port.ErrInvoiceNotFound
		},
	}
	uc := usecase.NewGetInvoice(repo)

	resp, err := uc.Execute(context.Background(), dto.GetInvoiceRequest{InvoiceID: invoice.ID()})

	require.NoError(t, err)
	assert.Equal(t, invoice.ID(), resp.ID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1000)))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "PARTIAL", resp.Status)
}

func TestGetInvoice_NotFound(t *testing.T) {
	uc := usecase.NewGetInvoice(&mockInvoiceRepo{})

	_, err := uc.Execute(context.Background(), dto.GetInvoiceRequest{InvoiceID: uuid.New()})

	assert.ErrorIs(t, err, port.ErrInvoiceNotFound)
}
