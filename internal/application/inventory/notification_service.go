package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
)

// NotificationResponse represents a stored low-stock notification
type NotificationResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
	ReadAt      *time.Time      `json:"read_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToNotificationResponse converts a domain notification to a response DTO
func ToNotificationResponse(n *inventory.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		ProductID:   n.ProductID,
		ProductCode: n.ProductCode,
		ProductName: n.ProductName,
		Quantity:    n.Quantity,
		MinStock:    n.MinStock,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

// NotificationService exposes stored low-stock notifications
type NotificationService struct {
	notifications inventory.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications inventory.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List retrieves notifications for a user, paginated, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[NotificationResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	rows, err := s.notifications.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.notifications.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, ToNotificationResponse(&rows[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkRead stamps a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifications.MarkReadForUser(ctx, userID, notificationID)
}
