package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// GormPurchaseReturnRepository implements trade.PurchaseReturnRepository using GORM
type GormPurchaseReturnRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReturnRepository creates a new GormPurchaseReturnRepository
func NewGormPurchaseReturnRepository(db *gorm.DB) *GormPurchaseReturnRepository {
	return &GormPurchaseReturnRepository{db: db}
}

// Save creates or updates a purchase return, replacing its items wholesale
func (r *GormPurchaseReturnRepository) Save(ctx context.Context, ret *trade.PurchaseReturn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return translateItemConflict(err)
		}
		keep := make([]uuid.UUID, len(ret.Items))
		for i, item := range ret.Items {
			keep[i] = item.ID
		}
		if err := deleteStaleItems(tx, &trade.PurchaseReturnItem{}, "return_id", ret.ID, keep); err != nil {
			return err
		}
		for i := range ret.Items {
			ret.Items[i].ReturnID = ret.ID
			if err := tx.Save(&ret.Items[i]).Error; err != nil {
				return translateItemConflict(err)
			}
		}
		return nil
	})
}

// FindByIDForUser finds a purchase return with its items
func (r *GormPurchaseReturnRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*trade.PurchaseReturn, error) {
	var ret trade.PurchaseReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND id = ?", userID, id).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindAllForUser finds purchase returns for a user matching the filter
func (r *GormPurchaseReturnRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.PurchaseReturn, error) {
	var rets []trade.PurchaseReturn
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}).Where("user_id = ?", userID),
		filter, "purchase_order_id", "return_date", true,
	)

	if err := query.Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// CountForUser counts purchase returns for a user matching the filter
func (r *GormPurchaseReturnRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseReturn{}).Where("user_id = ?", userID),
		filter, "purchase_order_id", "return_date", false,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByOrderForUser finds all returns raised against a purchase order
func (r *GormPurchaseReturnRepository) FindByOrderForUser(ctx context.Context, userID, purchaseOrderID uuid.UUID) ([]trade.PurchaseReturn, error) {
	var rets []trade.PurchaseReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND purchase_order_id = ?", userID, purchaseOrderID).
		Order("return_date ASC").
		Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// DeleteForUser deletes a purchase return and its items
func (r *GormPurchaseReturnRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&trade.PurchaseReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("return_id = ?", id).Delete(&trade.PurchaseReturnItem{}).Error
	})
}

var _ trade.PurchaseReturnRepository = (*GormPurchaseReturnRepository)(nil)
