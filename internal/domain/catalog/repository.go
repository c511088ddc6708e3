package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// ProductRepository persists products. Stock mutation does not go through
// here; the inventory.StockStore contract covers that.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Product, error)
	FindByCodeForUser(ctx context.Context, userID uuid.UUID, code string) (*Product, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Category, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
