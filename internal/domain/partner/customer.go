package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Customer is the counterparty of a sales order. The order engines consume
// it only as an ownership check; customers never affect stock directly.
type Customer struct {
	shared.OwnedAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(userID uuid.UUID, name string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Name:               name,
	}, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, email, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}
