package usecase_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/domain/model"
	"github.com/tallyhq/tally/internal/domain/port"
)

// --- Mock implementations shared across the usecase tests ---

// mockCoordinator runs the unit of work inline without a database. A
// non-nil runErr short-circuits before the unit of work executes.
type mockCoordinator struct {
	runErr error
	runs   int
}

func (m *mockCoordinator) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.runErr != nil {
		return m.runErr
	}
	m.runs++
	return fn(ctx)
}

type mockInvoiceRepo struct {
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (model.Invoice, error)
	saveFunc           func(ctx context.Context, invoice model.Invoice) error
	listByCustomerFunc func(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Invoice, int, error)
	listByOutletFunc   func(ctx context.Context, outletID uuid.UUID, limit, offset int) ([]model.Invoice, int, error)
	saved              []model.Invoice
	deleted            []model.Invoice
}

func (m *mockInvoiceRepo) Save(ctx context.Context, invoice model.Invoice) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, invoice)
	}
	m.saved = append(m.saved, invoice)
	return nil
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Invoice, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Invoice{}, port.ErrInvoiceNotFound
}

func (m *mockInvoiceRepo) Delete(_ context.Context, invoice model.Invoice) error {
	m.deleted = append(m.deleted, invoice)
	return nil
}

func (m *mockInvoiceRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Invoice, int, error) {
	if m.listByCustomerFunc != nil {
		return m.listByCustomerFunc(ctx, customerID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockInvoiceRepo) ListByOutlet(ctx context.Context, outletID uuid.UUID, limit, offset int) ([]model.Invoice, int, error) {
	if m.listByOutletFunc != nil {
		return m.listByOutletFunc(ctx, outletID, limit, offset)
	}
	return nil, 0, nil
}

type mockPaymentRepo struct {
	findByIDFunc         func(ctx context.Context, id uuid.UUID) (model.Payment, error)
	saveFunc             func(ctx context.Context, payment model.Payment) error
	existsForInvoiceFunc func(ctx context.Context, invoiceID uuid.UUID) (bool, error)
	saved                []model.Payment
	deleted              []model.Payment
}

func (m *mockPaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, payment)
	}
	m.saved = append(m.saved, payment)
	return nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, port.ErrPaymentNotFound
}

func (m *mockPaymentRepo) Delete(_ context.Context, payment model.Payment) error {
	m.deleted = append(m.deleted, payment)
	return nil
}

func (m *mockPaymentRepo) ExistsForInvoice(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	if m.existsForInvoiceFunc != nil {
		return m.existsForInvoiceFunc(ctx, invoiceID)
	}
	return false, nil
}

func (m *mockPaymentRepo) ListByCustomer(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Payment, int, error) {
	return nil, 0, nil
}

type mockCustomerRepo struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.Customer, error)
	saveFunc     func(ctx context.Context, customer model.Customer) error
	saved        []model.Customer
}

func (m *mockCustomerRepo) Save(ctx context.Context, customer model.Customer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, customer)
	}
	m.saved = append(m.saved, customer)
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Customer{}, port.ErrCustomerNotFound
}

type mockOutletRepo struct {
	existsFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockOutletRepo) Exists(ctx context.Context, id uuid.UUID) error {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return nil
}

type mockProductRepo struct {
	products map[uuid.UUID]model.Product
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return model.Product{}, port.ErrProductNotFound
	}
	return p, nil
}

// mockStockLedger records every reserve and release call in order.
type stockCall struct {
	productID uuid.UUID
	quantity  int
	release   bool
}

type mockStockLedger struct {
	reserveFunc func(ctx context.Context, productID uuid.UUID, quantity int) error
	calls       []stockCall
}

func (m *mockStockLedger) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	if m.reserveFunc != nil {
		if err := m.reserveFunc(ctx, productID, quantity); err != nil {
			return err
		}
	}
	m.calls = append(m.calls, stockCall{productID: productID, quantity: quantity})
	return nil
}

func (m *mockStockLedger) Release(_ context.Context, productID uuid.UUID, quantity int) error {
	m.calls = append(m.calls, stockCall{productID: productID, quantity: quantity, release: true})
	return nil
}

type mockReceiptStore struct {
	storeFunc func(ctx context.Context, name string, data []byte) (string, error)
	stored    []string
}

func (m *mockReceiptStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	if m.storeFunc != nil {
		return m.storeFunc(ctx, name, data)
	}
	m.stored = append(m.stored, name)
	return "/receipts/" + name, nil
}
