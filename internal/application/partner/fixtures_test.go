package partner

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
)

type memStore struct {
	customers map[uuid.UUID]*partner.Customer
	suppliers map[uuid.UUID]*partner.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[uuid.UUID]*partner.Customer),
		suppliers: make(map[uuid.UUID]*partner.Supplier),
	}
}

type memCustomerRepo memStore

func (m *memCustomerRepo) Save(_ context.Context, customer *partner.Customer) error {
	clone := *customer
	m.customers[customer.ID] = &clone
	return nil
}

func (m *memCustomerRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Customer, error) {
	customer, ok := m.customers[id]
	if !ok || customer.UserID != userID {
		return nil, shared.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}

func (m *memCustomerRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]partner.Customer, error) {
	var out []partner.Customer
	for _, customer := range m.customers {
		if customer.UserID == userID {
			out = append(out, *customer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCustomerRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, customer := range m.customers {
		if customer.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memCustomerRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	customer, ok := m.customers[id]
	return ok && customer.UserID == userID, nil
}

func (m *memCustomerRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	customer, ok := m.customers[id]
	if !ok || customer.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

type memSupplierRepo memStore

func (m *memSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	clone := *supplier
	m.suppliers[supplier.ID] = &clone
	return nil
}

func (m *memSupplierRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*partner.Supplier, error) {
	supplier, ok := m.suppliers[id]
	if !ok || supplier.UserID != userID {
		return nil, shared.ErrNotFound
	}
	clone := *supplier
	return &clone, nil
}

func (m *memSupplierRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]partner.Supplier, error) {
	var out []partner.Supplier
	for _, supplier := range m.suppliers {
		if supplier.UserID == userID {
			out = append(out, *supplier)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memSupplierRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, supplier := range m.suppliers {
		if supplier.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memSupplierRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	supplier, ok := m.suppliers[id]
	return ok && supplier.UserID == userID, nil
}

func (m *memSupplierRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	supplier, ok := m.suppliers[id]
	if !ok || supplier.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.suppliers, id)
	return nil
}
