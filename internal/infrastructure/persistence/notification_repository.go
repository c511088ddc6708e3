package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
)

// GormNotificationRepository implements inventory.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create stores a notification
func (r *GormNotificationRepository) Create(ctx context.Context, notification *inventory.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// FindAllForUser finds notifications for a user, unread first by default
func (r *GormNotificationRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]inventory.Notification, error) {
	var notifications []inventory.Notification
	query := r.db.WithContext(ctx).
		Model(&inventory.Notification{}).
		Where("user_id = ?", userID)
	query = r.applyUnreadFilter(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, NotificationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountForUser counts notifications for a user
func (r *GormNotificationRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&inventory.Notification{}).
		Where("user_id = ?", userID)
	query = r.applyUnreadFilter(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkReadForUser stamps a notification as read
func (r *GormNotificationRepository) MarkReadForUser(ctx context.Context, userID, id uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&inventory.Notification{}).
		Where("user_id = ? AND id = ? AND read_at IS NULL", userID, id).
		Updates(map[string]interface{}{"read_at": now, "updated_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish already-read from missing
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&inventory.Notification{}).
			Where("user_id = ? AND id = ?", userID, id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

func (r *GormNotificationRepository) applyUnreadFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if unread, ok := filter.Filters["unread"]; ok && unread == true {
		query = query.Where("read_at IS NULL")
	}
	return query
}

var _ inventory.NotificationRepository = (*GormNotificationRepository)(nil)
