package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// Save creates or updates a sales order, replacing its items wholesale
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return translateItemConflict(err)
		}
		keep := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			keep[i] = item.ID
		}
		if err := deleteStaleItems(tx, &trade.SalesOrderItem{}, "order_id", order.ID, keep); err != nil {
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

// FindByIDForUser finds a sales order with its items
func (r *GormSalesOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindAllForUser finds sales orders for a user matching the filter.
// Items are not preloaded on list queries.
func (r *GormSalesOrderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.SalesOrder{}).Where("user_id = ?", userID),
		filter, "customer_id", "order_date", true,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForUser counts sales orders for a user matching the filter
func (r *GormSalesOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := applyOrderFilter(
		r.db.WithContext(ctx).Model(&trade.SalesOrder{}).Where("user_id = ?", userID),
		filter, "customer_id", "order_date", false,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForUser checks whether a sales order exists for a user
func (r *GormSalesOrderRepository) ExistsForUser(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("user_id = ? AND id = ?", userID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteForUser deletes a sales order and its items
func (r *GormSalesOrderRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&trade.SalesOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&trade.SalesOrderItem{}).Error
	})
}

// applyOrderFilter applies the filtering shared by the order and return
// repositories: status and partner filters, a date range on the document
// date column, then pagination and ordering.
func applyOrderFilter(query *gorm.DB, filter shared.Filter, partnerColumn, dateColumn string, paginate bool) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id", "supplier_id", "sales_order_id", "purchase_order_id":
			if key == partnerColumn {
				query = query.Where(partnerColumn+" = ?", value)
			}
		case "from":
			query = query.Where(dateColumn+" >= ?", value)
		case "to":
			query = query.Where(dateColumn+" <= ?", value)
		}
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// deleteStaleItems removes line items that are no longer part of the saved
// document.
func deleteStaleItems(tx *gorm.DB, model interface{}, parentColumn string, parentID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where(parentColumn+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}

// translateItemConflict maps the per-document unique index on
// (parent_id, product_id) to the domain duplicate-line error. The aggregate
// rejects duplicates before persistence; the index is the backstop for
// racing writers.
func translateItemConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateLineItem
	}
	return err
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
