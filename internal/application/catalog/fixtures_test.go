package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/shared"
)

// memStore is the in-memory backing for the catalog repository fakes.
type memStore struct {
	products   map[uuid.UUID]*catalog.Product
	categories map[uuid.UUID]*catalog.Category
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[uuid.UUID]*catalog.Product),
		categories: make(map[uuid.UUID]*catalog.Category),
	}
}

type memProductRepo memStore

func (m *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	product, ok := m.products[id]
	if !ok || product.UserID != userID {
		return nil, shared.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *memProductRepo) FindByCodeForUser(_ context.Context, userID uuid.UUID, code string) (*catalog.Product, error) {
	for _, product := range m.products {
		if product.UserID == userID && product.Code == code {
			clone := *product
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memProductRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, product := range m.products {
		if product.UserID == userID {
			out = append(out, *product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memProductRepo) CountForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, product := range m.products {
		if product.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memProductRepo) ExistsForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	product, ok := m.products[id]
	return ok && product.UserID == userID, nil
}

func (m *memProductRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	product, ok := m.products[id]
	if !ok || product.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

type memCategoryRepo memStore

func (m *memCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	clone := *category
	m.categories[category.ID] = &clone
	return nil
}

func (m *memCategoryRepo) FindByIDForUser(_ context.Context, userID, id uuid.UUID) (*catalog.Category, error) {
	category, ok := m.categories[id]
	if !ok || category.UserID != userID {
		return nil, shared.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (m *memCategoryRepo) FindAllForUser(_ context.Context, userID uuid.UUID, _ shared.Filter) ([]catalog.Category, error) {
	var out []catalog.Category
	for _, category := range m.categories {
		if category.UserID == userID {
			out = append(out, *category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategoryRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) error {
	category, ok := m.categories[id]
	if !ok || category.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}
