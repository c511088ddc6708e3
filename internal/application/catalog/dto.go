package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=500"`
	Unit        string           `json:"unit" binding:"required,min=1,max=20"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product. Stock
// quantity is absent on purpose: it only moves through orders, returns,
// and inventory corrections.
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=500"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	MinStock     decimal.Decimal `json:"min_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		Code:         product.Code,
		Name:         product.Name,
		Description:  product.Description,
		CategoryID:   product.CategoryID,
		Unit:         product.Unit,
		Quantity:     product.Quantity,
		UnitCost:     product.UnitCost,
		UnitPrice:    product.UnitPrice,
		MinStock:     product.MinStock,
		BelowMinimum: product.IsBelowMinimum(),
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CategoryResponse represents a category in responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
