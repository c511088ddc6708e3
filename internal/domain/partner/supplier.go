package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Supplier is the counterparty of a purchase order.
type Supplier struct {
	shared.OwnedAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(userID uuid.UUID, name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, email, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	return nil
}
