package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Product represents a product/SKU and carries the authoritative stock
// quantity for it. Quantity is mutated exclusively through the stock store's
// atomic adjustment, never edited directly by order or return logic.
type Product struct {
	shared.OwnedAggregateRoot
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_user_code,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(userID uuid.UUID, code, name, unit string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	return &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Code:               strings.ToUpper(code),
		Name:               name,
		Unit:               unit,
		Quantity:           decimal.Zero,
		UnitCost:           decimal.Zero,
		UnitPrice:          decimal.Zero,
		MinStock:           decimal.Zero,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrices sets the unit cost and unit price
func (p *Product) SetPrices(unitCost, unitPrice decimal.Decimal) error {
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitCost = unitCost
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
}

// SetMinStock sets the minimum stock threshold used for shortage alerts
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	return nil
}

// CanFulfill returns true if the current stock covers the requested quantity
func (p *Product) CanFulfill(quantity decimal.Decimal) bool {
	return p.Quantity.GreaterThanOrEqual(quantity)
}

// IsBelowMinimum returns true if stock has fallen below the alert threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.Quantity.LessThan(p.MinStock)
}

// StockValue returns the inventory value at the recorded unit cost
func (p *Product) StockValue() decimal.Decimal {
	return p.Quantity.Mul(p.UnitCost)
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
