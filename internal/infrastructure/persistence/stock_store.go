package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
)

// GormStockStore implements inventory.StockStore against the quantity and
// unit_cost columns of the products table. Adjustments run as single UPDATE
// statements so concurrent writers to the same product row are serialized by
// the database, not by application locks.
type GormStockStore struct {
	db *gorm.DB
}

// NewGormStockStore creates a new GormStockStore
func NewGormStockStore(db *gorm.DB) *GormStockStore {
	return &GormStockStore{db: db}
}

// AdjustStock applies a signed delta to the product's quantity atomically
// and returns the stock level before and after.
func (s *GormStockStore) AdjustStock(ctx context.Context, userID, productID uuid.UUID, delta decimal.Decimal) (inventory.StockAdjustment, error) {
	var newStock decimal.Decimal
	result := s.db.WithContext(ctx).
		Raw(`UPDATE products
		     SET quantity = quantity + ?, updated_at = NOW()
		     WHERE user_id = ? AND id = ?
		     RETURNING quantity`,
			delta, userID, productID).
		Scan(&newStock)
	if result.Error != nil {
		return inventory.StockAdjustment{}, result.Error
	}
	// RETURNING yields no row when the product does not exist under this
	// user; Scan reports that through RowsAffected, not ErrRecordNotFound.
	if result.RowsAffected == 0 {
		return inventory.StockAdjustment{}, shared.ErrNotFound
	}

	return inventory.StockAdjustment{
		PreviousStock: newStock.Sub(delta),
		NewStock:      newStock,
	}, nil
}

// HasSufficientStock reports whether the product currently holds at least
// the required quantity. Advisory only; AdjustStock is authoritative.
func (s *GormStockStore) HasSufficientStock(ctx context.Context, userID, productID uuid.UUID, required decimal.Decimal) (bool, error) {
	quantity, err := s.GetStock(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	return quantity.GreaterThanOrEqual(required), nil
}

// GetStock returns the current quantity for a product
func (s *GormStockStore) GetStock(ctx context.Context, userID, productID uuid.UUID) (decimal.Decimal, error) {
	var product catalog.Product
	if err := s.db.WithContext(ctx).
		Select("quantity").
		Where("user_id = ? AND id = ?", userID, productID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return product.Quantity, nil
}

// RaiseUnitCost ratchets the recorded unit cost upward. The WHERE clause
// carries the monotonic condition so concurrent receipts cannot lower it.
func (s *GormStockStore) RaiseUnitCost(ctx context.Context, userID, productID uuid.UUID, cost decimal.Decimal) error {
	return s.db.WithContext(ctx).
		Exec(`UPDATE products
		      SET unit_cost = ?, updated_at = NOW()
		      WHERE user_id = ? AND id = ? AND unit_cost < ?`,
			cost, userID, productID, cost).Error
}

var _ inventory.StockStore = (*GormStockStore)(nil)
