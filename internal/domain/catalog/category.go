package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Category groups products for reference purposes. Categories never affect
// stock.
type Category struct {
	shared.OwnedAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_user_name,priority:2"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(userID uuid.UUID, name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
		Description:        description,
	}, nil
}

// Update updates the category
func (c *Category) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}
