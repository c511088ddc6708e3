package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
)

// GormInventoryTransactionRepository implements the append-only ledger
// store using GORM. There are deliberately no update or delete methods.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create appends a transaction to the ledger
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByIDForUser finds a transaction by ID within a user's data
func (r *GormInventoryTransactionRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var tx inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAllForUser finds transactions for a user matching the filter
func (r *GormInventoryTransactionRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter inventory.TransactionFilter, page shared.Filter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyPage(r.applyFilter(r.forUser(ctx, userID), filter), page)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// CountForUser counts transactions for a user matching the filter
func (r *GormInventoryTransactionRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.forUser(ctx, userID), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByProduct finds transactions for a product
func (r *GormInventoryTransactionRepository) FindByProduct(ctx context.Context, userID, productID uuid.UUID, page shared.Filter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyPage(r.forUser(ctx, userID).Where("product_id = ?", productID), page)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *GormInventoryTransactionRepository) forUser(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("user_id = ?", userID)
}

func (r *GormInventoryTransactionRepository) applyFilter(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != nil {
		query = query.Where("transaction_type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	return query
}

func (r *GormInventoryTransactionRepository) applyPage(query *gorm.DB, page shared.Filter) *gorm.DB {
	if page.Page > 0 && page.PageSize > 0 {
		offset := (page.Page - 1) * page.PageSize
		query = query.Offset(offset).Limit(page.PageSize)
	}

	orderBy := ValidateSortField(page.OrderBy, LedgerSortFields, "transaction_date")
	return query.Order(orderBy + " " + ValidateSortOrder(page.OrderDir))
}

var _ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)
