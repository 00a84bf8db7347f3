package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tallyhq/tally/internal/application/dto"
	"github.com/tallyhq/tally/internal/application/usecase"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
	"github.com/tallyhq/tally/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// statusFromError translates domain and port errors into gRPC status codes.
// Anything unrecognized is reported as Internal without leaking detail.
func statusFromError(logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, model.ErrItemsRequired),
		errors.Is(err, model.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrInvoiceNotFound),
		errors.Is(err, port.ErrPaymentNotFound),
		errors.Is(err, port.ErrCustomerNotFound),
		errors.Is(err, port.ErrProductNotFound),
		errors.Is(err, port.ErrOutletNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrInsufficientStock),
		errors.Is(err, model.ErrHasExistingPayment),
		errors.Is(err, model.ErrOutsideDeleteWindow):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		logger.Error("handler error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that LedgerHandler implements LedgerServiceServer.
var _ LedgerServiceServer = (*LedgerHandler)(nil)

// LedgerHandler implements the gRPC LedgerService server.
type LedgerHandler struct {
	UnimplementedLedgerServiceServer
	createInvoice *usecase.CreateInvoice
	editInvoice   *usecase.EditInvoice
	deleteInvoice *usecase.DeleteInvoice
	getInvoice    *usecase.GetInvoice
	listInvoices  *usecase.ListInvoices
	recordPayment *usecase.RecordPayment
	editPayment   *usecase.EditPayment
	deletePayment *usecase.DeletePayment
	getCustomer   *usecase.GetCustomer

	logger *slog.Logger
}

func NewLedgerHandler(
	createInvoice *usecase.CreateInvoice,
	editInvoice *usecase.EditInvoice,
	deleteInvoice *usecase.DeleteInvoice,
	getInvoice *usecase.GetInvoice,
	listInvoices *usecase.ListInvoices,
	recordPayment *usecase.RecordPayment,
	editPayment *usecase.EditPayment,
	deletePayment *usecase.DeletePayment,
	getCustomer *usecase.GetCustomer,
	logger *slog.Logger,
) *LedgerHandler {
	return &LedgerHandler{
		createInvoice: createInvoice,
		editInvoice:   editInvoice,
		deleteInvoice: deleteInvoice,
		getInvoice:    getInvoice,
		listInvoices:  listInvoices,
		recordPayment: recordPayment,
		editPayment:   editPayment,
		deletePayment: deletePayment,
		getCustomer:   getCustomer,

		logger: logger}
}

// Temporary gRPC message types until proto generation is wired.

type LineItemMsg struct {
	ProductID string `json:"product_id"`
	UnitPrice string `json:"unit_price,omitempty"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal,omitempty"`
}

type CreateInvoiceRequestMsg struct {
	CustomerID string         `json:"customer_id"`
	OutletID   string         `json:"outlet_id"`
	Items      []*LineItemMsg `json:"items"`
	AmountPaid string         `json:"amount_paid,omitempty"`
	Method     string         `json:"method,omitempty"`
}

type InvoiceMsg struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	OutletID   string         `json:"outlet_id"`
	Items      []*LineItemMsg `json:"items"`
	Subtotal   string         `json:"subtotal"`
	Tax        string         `json:"tax"`
	Total      string         `json:"total"`
	AmountPaid string         `json:"amount_paid"`
	Balance    string         `json:"balance"`
	Status     string         `json:"status"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
	Version    int32          `json:"version"`
}

type CreateInvoiceResponseMsg struct {
	Invoice *InvoiceMsg `json:"invoice"`
}

type EditInvoiceRequestMsg struct {
	InvoiceID  string         `json:"invoice_id"`
	Items      []*LineItemMsg `json:"items"`
	AmountPaid string         `json:"amount_paid,omitempty"`
	Method     string         `json:"method,omitempty"`
}

type EditInvoiceResponseMsg struct {
	Invoice *InvoiceMsg `json:"invoice"`
	Payment *PaymentMsg `json:"payment,omitempty"`
}

type DeleteInvoiceRequestMsg struct {
	InvoiceID string `json:"invoice_id"`
}

type DeleteInvoiceResponseMsg struct{}

type GetInvoiceRequestMsg struct {
	InvoiceID string `json:"invoice_id"`
}

type GetInvoiceResponseMsg struct {
	Invoice *InvoiceMsg `json:"invoice"`
}

type ListInvoicesRequestMsg struct {
	CustomerID string `json:"customer_id,omitempty"`
	OutletID   string `json:"outlet_id,omitempty"`
	PageSize   int32  `json:"page_size"`
	Offset     int32  `json:"offset"`
}

type ListInvoicesResponseMsg struct {
	Invoices   []*InvoiceMsg `json:"invoices"`
	TotalCount int32         `json:"total_count"`
}

type PaymentMsg struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	InvoiceID  string `json:"invoice_id,omitempty"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	ReceiptURL string `json:"receipt_url,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Version    int32  `json:"version"`
}

type RecordPaymentRequestMsg struct {
	CustomerID string `json:"customer_id"`
	InvoiceID  string `json:"invoice_id,omitempty"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	Receipt    []byte `json:"receipt,omitempty"`
}

type RecordPaymentResponseMsg struct {
	Payment *PaymentMsg `json:"payment"`
}

type EditPaymentRequestMsg struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id,omitempty"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

type EditPaymentResponseMsg struct {
	Payment *PaymentMsg `json:"payment"`
}

type DeletePaymentRequestMsg struct {
	PaymentID string `json:"payment_id"`
}

type DeletePaymentResponseMsg struct{}

type GetCustomerRequestMsg struct {
	CustomerID string `json:"customer_id"`
}

type CustomerMsg struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TotalSales    string `json:"total_sales"`
	CurrentDebt   string `json:"current_debt"`
	CreditBalance string `json:"credit_balance"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	Version       int32  `json:"version"`
}

type GetCustomerResponseMsg struct {
	Customer *CustomerMsg `json:"customer"`
}

func (h *LedgerHandler) CreateInvoice(ctx context.Context, req *CreateInvoiceRequestMsg) (*CreateInvoiceResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleCashier); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
	}

	outletID, err := uuid.Parse(req.OutletID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid outlet_id: %v", err)
	}

	items, err := parseLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	amountPaid, err := parseOptionalAmount(req.AmountPaid, "amount_paid")
	if err != nil {
		return nil, err
	}

	if err := validateOptionalMethod(req.Method); err != nil {
		return nil, err
	}

	result, err := h.createInvoice.Execute(ctx, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		OutletID:   outletID,
		Items:      items,
		AmountPaid: amountPaid,
		Method:     req.Method,
	})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &CreateInvoiceResponseMsg{Invoice: toInvoiceMsg(result)}, nil
}

func (h *LedgerHandler) EditInvoice(ctx context.Context, req *EditInvoiceRequestMsg) (*EditInvoiceResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	items, err := parseLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	amountPaid, err := parseOptionalAmount(req.AmountPaid, "amount_paid")
	if err != nil {
		return nil, err
	}

	if err := validateOptionalMethod(req.Method); err != nil {
		return nil, err
	}

	result, err := h.editInvoice.Execute(ctx, dto.EditInvoiceRequest{
		InvoiceID:  invoiceID,
		Items:      items,
		AmountPaid: amountPaid,
		Method:     req.Method,
	})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	resp := &EditInvoiceResponseMsg{Invoice: toInvoiceMsg(result.Invoice)}
	if result.Payment != nil {
		resp.Payment = toPaymentMsg(*result.Payment)
	}
	return resp, nil
}

func (h *LedgerHandler) DeleteInvoice(ctx context.Context, req *DeleteInvoiceRequestMsg) (*DeleteInvoiceResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	if err := h.deleteInvoice.Execute(ctx, dto.DeleteInvoiceRequest{InvoiceID: invoiceID}); err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &DeleteInvoiceResponseMsg{}, nil
}

func (h *LedgerHandler) GetInvoice(ctx context.Context, req *GetInvoiceRequestMsg) (*GetInvoiceResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleAuditor); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid invoice_id: %v", err)
	}

	result, err := h.getInvoice.Execute(ctx, dto.GetInvoiceRequest{InvoiceID: invoiceID})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &GetInvoiceResponseMsg{Invoice: toInvoiceMsg(result)}, nil
}

func (h *LedgerHandler) ListInvoices(ctx context.Context, req *ListInvoicesRequestMsg) (*ListInvoicesResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleAuditor); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.CustomerID == "" && req.OutletID == "" {
		return nil, status.Error(codes.InvalidArgument, "either customer_id or outlet_id is required")
	}

	var customerID, outletID uuid.UUID
	var err error
	if req.CustomerID != "" {
		customerID, err = uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
		}
	}
	if req.OutletID != "" {
		outletID, err = uuid.Parse(req.OutletID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid outlet_id: %v", err)
		}
	}
	if req.PageSize < 0 {
		return nil, status.Error(codes.InvalidArgument, "page_size must be >= 0")
	}
	if req.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "offset must be >= 0")
	}

	result, err := h.listInvoices.Execute(ctx, dto.ListInvoicesRequest{
		CustomerID: customerID,
		OutletID:   outletID,
		PageSize:   int(req.PageSize),
		Offset:     int(req.Offset),
	})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	var invoices []*InvoiceMsg
	for _, inv := range result.Invoices {
		invoices = append(invoices, toInvoiceMsg(inv))
	}

	return &ListInvoicesResponseMsg{
		Invoices:   invoices,
		TotalCount: int32(result.TotalCount), //nolint:gosec // bounded
	}, nil
}

func (h *LedgerHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequestMsg) (*RecordPaymentResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleCashier); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
	}

	invoiceID, err := parseOptionalUUID(req.InvoiceID, "invoice_id")
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	if _, err := valueobject.NewPaymentMethod(req.Method); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	result, err := h.recordPayment.Execute(ctx, dto.RecordPaymentRequest{
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Amount:     amount,
		Method:     req.Method,
		Receipt:    req.Receipt,
	})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &RecordPaymentResponseMsg{Payment: toPaymentMsg(result)}, nil
}

func (h *LedgerHandler) EditPayment(ctx context.Context, req *EditPaymentRequestMsg) (*EditPaymentResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid payment_id: %v", err)
	}

	invoiceID, err := parseOptionalUUID(req.InvoiceID, "invoice_id")
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	if _, err := valueobject.NewPaymentMethod(req.Method); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	result, err := h.editPayment.Execute(ctx, dto.EditPaymentRequest{
		PaymentID: paymentID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    req.Method,
	})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &EditPaymentResponseMsg{Payment: toPaymentMsg(result)}, nil
}

func (h *LedgerHandler) DeletePayment(ctx context.Context, req *DeletePaymentRequestMsg) (*DeletePaymentResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid payment_id: %v", err)
	}

	if err := h.deletePayment.Execute(ctx, dto.DeletePaymentRequest{PaymentID: paymentID}); err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &DeletePaymentResponseMsg{}, nil
}

func (h *LedgerHandler) GetCustomer(ctx context.Context, req *GetCustomerRequestMsg) (*GetCustomerResponseMsg, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleAuditor); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
	}

	result, err := h.getCustomer.Execute(ctx, dto.GetCustomerRequest{CustomerID: customerID})
	if err != nil {
		return nil, statusFromError(h.logger, err)
	}

	return &GetCustomerResponseMsg{Customer: toCustomerMsg(result)}, nil
}

func parseLineItems(msgs []*LineItemMsg) ([]dto.LineItemRequest, error) {
	items := make([]dto.LineItemRequest, 0, len(msgs))
	for i, m := range msgs {
		if m == nil {
			return nil, status.Errorf(codes.InvalidArgument, "items[%d] is required", i)
		}
		productID, err := uuid.Parse(m.ProductID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid items[%d].product_id: %v", i, err)
		}
		if m.Quantity <= 0 {
			return nil, status.Errorf(codes.InvalidArgument, "items[%d].quantity must be positive", i)
		}
		items = append(items, dto.LineItemRequest{
			ProductID: productID,
			Quantity:  int(m.Quantity),
		})
	}
	return items, nil
}

func parseOptionalAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "%s must be >= 0", field)
	}
	return amount, nil
}

func parseOptionalUUID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return &id, nil
}

func validateOptionalMethod(method string) error {
	if method == "" {
		return nil
	}
	if _, err := valueobject.NewPaymentMethod(method); err != nil {
		return status.Errorf(codes.InvalidArgument, "%v", err)
	}
	return nil
}

func toInvoiceMsg(r dto.InvoiceResponse) *InvoiceMsg {
	items := make([]*LineItemMsg, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, &LineItemMsg{
			ProductID: it.ProductID.String(),
			UnitPrice: it.UnitPrice.StringFixed(2),
			Quantity:  int32(it.Quantity), //nolint:gosec // bounded
			Subtotal:  it.Subtotal.StringFixed(2),
		})
	}
	return &InvoiceMsg{
		ID:         r.ID.String(),
		CustomerID: r.CustomerID.String(),
		OutletID:   r.OutletID.String(),
		Items:      items,
		Subtotal:   r.Subtotal.StringFixed(2),
		Tax:        r.Tax.StringFixed(2),
		Total:      r.Total.StringFixed(2),
		AmountPaid: r.AmountPaid.StringFixed(2),
		Balance:    r.Balance.StringFixed(2),
		Status:     r.Status,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
		Version:    int32(r.Version), //nolint:gosec // bounded
	}
}

func toPaymentMsg(r dto.PaymentResponse) *PaymentMsg {
	msg := &PaymentMsg{
		ID:         r.ID.String(),
		CustomerID: r.CustomerID.String(),
		Amount:     r.Amount.StringFixed(2),
		Method:     r.Method,
		ReceiptURL: r.ReceiptURL,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
		Version:    int32(r.Version), //nolint:gosec // bounded
	}
	if r.InvoiceID != nil {
		msg.InvoiceID = r.InvoiceID.String()
	}
	return msg
}

func toCustomerMsg(r dto.CustomerResponse) *CustomerMsg {
	return &CustomerMsg{
		ID:            r.ID.String(),
		Name:          r.Name,
		TotalSales:    r.TotalSales.StringFixed(2),
		CurrentDebt:   r.CurrentDebt.StringFixed(2),
		CreditBalance: r.CreditBalance.StringFixed(2),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
		Version:       int32(r.Version), //nolint:gosec // bounded
	}
}
