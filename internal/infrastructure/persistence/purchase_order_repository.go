package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Save creates or updates a purchase order, replacing its items wholesale
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return translateItemConflict(err)
		}
		keep := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			keep[i] = item.ID
		}
		if err := deleteStaleItems(tx, &trade.PurchaseOrderItem{}, "order_id", order.ID, keep); err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return translateItemConflict(err)
			}
		}
		return nil
	})
}

// FindByIDForUser finds a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND id = ?", userID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForUser finds purchase orders for a user matching the filter
func (r *GormPurchaseOrderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Where("user_id = ?", userID),
		filter, "supplier_id", "order_date", true,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForUser counts purchase orders for a user matching the filter
func (r *GormPurchaseOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Where("user_id = ?", userID),
		filter, "supplier_id", "order_date", false,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForUser checks whether a purchase order exists for a user
func (r *GormPurchaseOrderRepository) ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteForUser deletes a purchase order and its items
func (r *GormPurchaseOrderRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&trade.PurchaseOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&trade.PurchaseOrderItem{}).Error
	})
}

var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
