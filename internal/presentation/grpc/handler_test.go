package grpc

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tallyhq/tally/internal/application/usecase"
	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
	"github.com/tallyhq/tally/internal/domain/valueobject"
	"github.com/tallyhq/tally/pkg/auth"
)

// --- Mock implementations ---

type mockCoordinator struct{}

func (m *mockCoordinator) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockInvoiceRepo struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.Invoice, error)
}

func (m *mockInvoiceRepo) Save(_ context.Context, _ model.Invoice) error { return nil }

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Invoice{}, port.ErrInvoiceNotFound
}

func (m *mockInvoiceRepo) Delete(_ context.Context, _ model.Invoice) error { return nil }

func (m *mockInvoiceRepo) ListByCustomer(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Invoice, int, error) {
	return nil, 0, nil
}

func (m *mockInvoiceRepo) ListByOutlet(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Invoice, int, error) {
	return nil, 0, nil
}

type mockPaymentRepo struct {
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (model.Payment, error)
	existsForInvoice bool
}

func (m *mockPaymentRepo) Save(_ context.Context, _ model.Payment) error { return nil }

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, port.ErrPaymentNotFound
}

func (m *mockPaymentRepo) Delete(_ context.Context, _ model.Payment) error { return nil }

func (m *mockPaymentRepo) ExistsForInvoice(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.existsForInvoice, nil
}

func (m *mockPaymentRepo) ListByCustomer(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Payment, int, error) {
	return nil, 0, nil
}

type mockCustomerRepo struct {
	customers map[uuid.UUID]model.Customer
}

func (m *mockCustomerRepo) Save(_ context.Context, _ model.Customer) error { return nil }

func (m *mockCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (model.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return model.Customer{}, port.ErrCustomerNotFound
}

type mockOutletRepo struct {
	missing bool
}

func (m *mockOutletRepo) Exists(_ context.Context, _ uuid.UUID) error {
	if m.missing {
		return port.ErrOutletNotFound
	}
	return nil
}

// mockCatalog doubles as the product catalog and the stock ledger.
type mockCatalog struct {
	products   map[uuid.UUID]model.Product
	reserveErr error
}

func (m *mockCatalog) FindByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return model.Product{}, port.ErrProductNotFound
}

func (m *mockCatalog) Reserve(_ context.Context, _ uuid.UUID, _ int) error { return m.reserveErr }

func (m *mockCatalog) Release(_ context.Context, _ uuid.UUID, _ int) error { return nil }

type mockReceiptStore struct{}

func (m *mockReceiptStore) Store(_ context.Context, name string, _ []byte) (string, error) {
	return "/receipts/" + name, nil
}

// --- Helpers ---

type handlerFixture struct {
	invoices  *mockInvoiceRepo
	payments  *mockPaymentRepo
	customers *mockCustomerRepo
	outlets   *mockOutletRepo
	catalog   *mockCatalog
	handler   *LedgerHandler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		invoices:  &mockInvoiceRepo{},
		payments:  &mockPaymentRepo{},
		customers: &mockCustomerRepo{customers: map[uuid.UUID]model.Customer{}},
		outlets:   &mockOutletRepo{},
		catalog:   &mockCatalog{products: map[uuid.UUID]model.Product{}},
	}

	coord := &mockCoordinator{}
	taxRate := decimal.Zero
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.handler = NewLedgerHandler(
		usecase.NewCreateInvoice(coord, f.invoices, f.payments, f.customers, f.outlets, f.catalog, f.catalog, taxRate),
		usecase.NewEditInvoice(coord, f.invoices, f.payments, f.customers, f.catalog, f.catalog, taxRate),
		usecase.NewDeleteInvoice(coord, f.invoices, f.payments, f.customers, f.catalog),
		usecase.NewGetInvoice(f.invoices),
		usecase.NewListInvoices(f.invoices),
		usecase.NewRecordPayment(coord, f.payments, f.invoices, f.customers, &mockReceiptStore{}),
		usecase.NewEditPayment(coord, f.payments, f.invoices, f.customers),
		usecase.NewDeletePayment(coord, f.payments, f.invoices, f.customers, model.DefaultDeleteWindow),
		usecase.NewGetCustomer(f.customers),
		logger,
	)
	return f
}

func (f *handlerFixture) addCustomer(t *testing.T) model.Customer {
	t.Helper()
	customer, err := model.NewCustomer("Ada & Sons Trading")
	require.NoError(t, err)
	f.customers.customers[customer.ID()] = customer
	return customer
}

func (f *handlerFixture) addProduct(price int64, stock int) model.Product {
	p := model.Product{
		ID:    uuid.New(),
		Name:  "50kg Rice",
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	f.catalog.products[p.ID] = p
	return p
}

func contextWithRoles(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID:   uuid.New(),
		OutletID: uuid.New(),
		Roles:    roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func cashierContext() context.Context {
	return contextWithRoles(auth.RoleAdmin)
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}

// --- Tests ---

func TestCreateInvoiceHandler(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(context.Background(), &CreateInvoiceRequestMsg{})
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("auditor role returns PermissionDenied", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(contextWithRoles(auth.RoleAuditor), &CreateInvoiceRequestMsg{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(cashierContext(), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("invalid customer_id returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: "bad-uuid",
			OutletID:   uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid customer_id")
	})

	t.Run("zero quantity returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: uuid.New().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: uuid.New().String(), Quantity: 0}},
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "quantity must be positive")
	})

	t.Run("invalid method returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: uuid.New().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: uuid.New().String(), Quantity: 1}},
			AmountPaid: "100.00",
			Method:     "BARTER",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("empty items returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		f.addCustomer(t)
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: uuid.New().String(),
			OutletID:   uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown customer returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		p := f.addProduct(500, 10)
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: uuid.New().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: p.ID.String(), Quantity: 2}},
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("unknown outlet returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		f.outlets.missing = true
		customer := f.addCustomer(t)
		p := f.addProduct(500, 10)
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: customer.ID().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: p.ID.String(), Quantity: 2}},
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("insufficient stock returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture()
		f.catalog.reserveErr = port.ErrInsufficientStock
		customer := f.addCustomer(t)
		p := f.addProduct(500, 1)
		_, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: customer.ID().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: p.ID.String(), Quantity: 5}},
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})

	t.Run("happy path returns priced invoice", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)
		p := f.addProduct(500, 10)

		resp, err := f.handler.CreateInvoice(cashierContext(), &CreateInvoiceRequestMsg{
			CustomerID: customer.ID().String(),
			OutletID:   uuid.New().String(),
			Items:      []*LineItemMsg{{ProductID: p.ID.String(), Quantity: 2}},
			AmountPaid: "400.00",
			Method:     "CASH",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Invoice)
		assert.Equal(t, "1000.00", resp.Invoice.Total)
		assert.Equal(t, "400.00", resp.Invoice.AmountPaid)
		assert.Equal(t, "600.00", resp.Invoice.Balance)
		assert.Equal(t, "PARTIAL", resp.Invoice.Status)
		require.Len(t, resp.Invoice.Items, 1)
		assert.Equal(t, "500.00", resp.Invoice.Items[0].UnitPrice)
	})
}

func TestEditInvoiceHandler(t *testing.T) {
	t.Run("invalid invoice_id returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.EditInvoice(cashierContext(), &EditInvoiceRequestMsg{InvoiceID: "bad"})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("cashier role returns PermissionDenied", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.EditInvoice(contextWithRoles(auth.RoleCashier), &EditInvoiceRequestMsg{})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("unknown invoice returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		p := f.addProduct(500, 10)
		_, err := f.handler.EditInvoice(cashierContext(), &EditInvoiceRequestMsg{
			InvoiceID: uuid.New().String(),
			Items:     []*LineItemMsg{{ProductID: p.ID.String(), Quantity: 1}},
		})
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestDeleteInvoiceHandler(t *testing.T) {
	t.Run("unknown invoice returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.DeleteInvoice(cashierContext(), &DeleteInvoiceRequestMsg{
			InvoiceID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("existing payment returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)
		p := f.addProduct(500, 10)

		invoice, err := model.NewInvoice(customer.ID(), uuid.New(), []valueobject.LineItem{
			mustLineItem(t, p.ID, p.Price, 2),
		}, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		f.invoices.findByIDFunc = func(_ context.Context, _ uuid.UUID) (model.Invoice, error) {
			return invoice, nil
		}
		f.payments.existsForInvoice = true

		_, err = f.handler.DeleteInvoice(cashierContext(), &DeleteInvoiceRequestMsg{
			InvoiceID: invoice.ID().String(),
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestListInvoicesHandler(t *testing.T) {
	t.Run("missing scope returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.ListInvoices(cashierContext(), &ListInvoicesRequestMsg{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("negative offset returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.ListInvoices(cashierContext(), &ListInvoicesRequestMsg{
			CustomerID: uuid.New().String(),
			Offset:     -1,
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("happy path returns empty page", func(t *testing.T) {
		f := newHandlerFixture()
		resp, err := f.handler.ListInvoices(cashierContext(), &ListInvoicesRequestMsg{
			CustomerID: uuid.New().String(),
			PageSize:   10,
		})
		require.NoError(t, err)
		assert.Equal(t, int32(0), resp.TotalCount)
	})
}

func TestRecordPaymentHandler(t *testing.T) {
	t.Run("invalid amount returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.RecordPayment(cashierContext(), &RecordPaymentRequestMsg{
			CustomerID: uuid.New().String(),
			Amount:     "not-a-number",
			Method:     "CASH",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("negative amount returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		f.addCustomer(t)
		_, err := f.handler.RecordPayment(cashierContext(), &RecordPaymentRequestMsg{
			CustomerID: uuid.New().String(),
			Amount:     "-50.00",
			Method:     "CASH",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("invalid method returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.RecordPayment(cashierContext(), &RecordPaymentRequestMsg{
			CustomerID: uuid.New().String(),
			Amount:     "100.00",
			Method:     "IOU",
		})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown invoice returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)
		_, err := f.handler.RecordPayment(cashierContext(), &RecordPaymentRequestMsg{
			CustomerID: customer.ID().String(),
			InvoiceID:  uuid.New().String(),
			Amount:     "100.00",
			Method:     "CASH",
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("happy path standalone payment", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)

		resp, err := f.handler.RecordPayment(cashierContext(), &RecordPaymentRequestMsg{
			CustomerID: customer.ID().String(),
			Amount:     "250.00",
			Method:     "TRANSFER",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Payment)
		assert.Equal(t, "250.00", resp.Payment.Amount)
		assert.Equal(t, "TRANSFER", resp.Payment.Method)
		assert.Empty(t, resp.Payment.InvoiceID)
	})
}

func TestEditPaymentHandler(t *testing.T) {
	t.Run("invalid payment_id returns InvalidArgument", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.EditPayment(cashierContext(), &EditPaymentRequestMsg{PaymentID: "bad"})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("unknown payment returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.EditPayment(cashierContext(), &EditPaymentRequestMsg{
			PaymentID: uuid.New().String(),
			Amount:    "100.00",
			Method:    "CASH",
		})
		requireGRPCCode(t, err, codes.NotFound)
	})
}

func TestDeletePaymentHandler(t *testing.T) {
	t.Run("unknown payment returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.DeletePayment(cashierContext(), &DeletePaymentRequestMsg{
			PaymentID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("aged payment returns FailedPrecondition", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)
		createdAt := time.Now().UTC().Add(-8 * 24 * time.Hour)
		payment := model.ReconstructPayment(
			uuid.New(), nil, customer.ID(),
			decimal.NewFromInt(100), valueobject.PaymentMethodCash,
			"", 1, createdAt, createdAt,
		)
		f.payments.findByIDFunc = func(_ context.Context, _ uuid.UUID) (model.Payment, error) {
			return payment, nil
		}

		_, err := f.handler.DeletePayment(cashierContext(), &DeletePaymentRequestMsg{
			PaymentID: payment.ID().String(),
		})
		requireGRPCCode(t, err, codes.FailedPrecondition)
	})
}

func TestGetCustomerHandler(t *testing.T) {
	t.Run("unknown customer returns NotFound", func(t *testing.T) {
		f := newHandlerFixture()
		_, err := f.handler.GetCustomer(cashierContext(), &GetCustomerRequestMsg{
			CustomerID: uuid.New().String(),
		})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("happy path returns customer position", func(t *testing.T) {
		f := newHandlerFixture()
		customer := f.addCustomer(t)

		resp, err := f.handler.GetCustomer(cashierContext(), &GetCustomerRequestMsg{
			CustomerID: customer.ID().String(),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Customer)
		assert.Equal(t, customer.ID().String(), resp.Customer.ID)
		assert.Equal(t, "0.00", resp.Customer.CurrentDebt)
	})
}

func mustLineItem(t *testing.T, productID uuid.UUID, price decimal.Decimal, qty int) valueobject.LineItem {
	t.Helper()
	item, err := valueobject.NewLineItem(productID, price, qty)
	require.NoError(t, err)
	return item
}
