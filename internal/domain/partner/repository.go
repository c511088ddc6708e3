package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Customer, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *Supplier) error
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Supplier, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
