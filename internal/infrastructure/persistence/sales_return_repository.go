package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// GormSalesReturnRepository implements trade.SalesReturnRepository using GORM
type GormSalesReturnRepository struct {
	db *gorm.DB
}

// NewGormSalesReturnRepository creates a new GormSalesReturnRepository
func NewGormSalesReturnRepository(db *gorm.DB) *GormSalesReturnRepository {
	return &GormSalesReturnRepository{db: db}
}

// Save creates or updates a sales return, replacing its items wholesale
func (r *GormSalesReturnRepository) Save(ctx context.Context, ret *trade.SalesReturn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return translateItemConflict(err)
		}
		keep := make([]uuid.UUID, len(ret.Items))
		for i, item := range ret.Items {
			keep[i] = item.ID
		}
		if err := deleteStaleItems(tx, &trade.SalesReturnItem{}, "return_id", ret.ID, keep); err != nil {
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

// FindByIDForUser finds a sales return with its items
func (r *GormSalesReturnRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*trade.SalesReturn, error) {
	var ret trade.SalesReturn
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

// FindAllForUser finds sales returns for a user matching the filter
func (r *GormSalesReturnRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.SalesReturn, error) {
	var rets []trade.SalesReturn
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.SalesReturn{}).Where("user_id = ?", userID),
		filter, "sales_order_id", "return_date", true,
	)

	if err := query.Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// CountForUser counts sales returns for a user matching the filter
func (r *GormSalesReturnRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.SalesReturn{}).Where("user_id = ?", userID),
		filter, "sales_order_id", "return_date", false,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByOrderForUser finds all returns raised against a sales order
func (r *GormSalesReturnRepository) FindByOrderForUser(ctx context.Context, userID, salesOrderID uuid.UUID) ([]trade.SalesReturn, error) {
	var rets []trade.SalesReturn
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND sales_order_id = ?", userID, salesOrderID).
		Order("return_date ASC").
		Find(&rets).Error; err != nil {
		return nil, err
	}
	return rets, nil
}

// DeleteForUser deletes a sales return and its items
func (r *GormSalesReturnRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&trade.SalesReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("return_id = ?", id).Delete(&trade.SalesReturnItem{}).Error
	})
}

var _ trade.SalesReturnRepository = (*GormSalesReturnRepository)(nil)
