package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	userID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(userID, "SKU-001", "Steel Bolt M8", "pcs")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, userID, product.UserID)
		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Steel Bolt M8", product.Name)
		assert.Equal(t, "pcs", product.Unit)
		assert.True(t, product.Quantity.IsZero())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct(userID, "", "Steel Bolt M8", "pcs")
		require.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(userID, "SKU-001", "", "pcs")
		require.Error(t, err)
	})
}

func TestProductUpdate(t *testing.T) {
	product, err := NewProduct(uuid.New(), "SKU-001", "Steel Bolt M8", "pcs")
	require.NoError(t, err)

	require.NoError(t, product.Update("Steel Bolt M10", "larger size"))
	assert.Equal(t, "Steel Bolt M10", product.Name)
	assert.Equal(t, "larger size", product.Description)

	require.Error(t, product.Update("", ""))
}

func TestProductSetPrices(t *testing.T) {
	product, err := NewProduct(uuid.New(), "SKU-001", "Steel Bolt M8", "pcs")
	require.NoError(t, err)

	t.Run("sets cost and price", func(t *testing.T) {
		require.NoError(t, product.SetPrices(decimal.NewFromInt(2), decimal.NewFromInt(5)))
		assert.True(t, product.UnitCost.Equal(decimal.NewFromInt(2)))
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects negative values", func(t *testing.T) {
		require.Error(t, product.SetPrices(decimal.NewFromInt(-1), decimal.NewFromInt(5)))
		require.Error(t, product.SetPrices(decimal.NewFromInt(2), decimal.NewFromInt(-5)))
	})
}

func TestProductStockChecks(t *testing.T) {
	product, err := NewProduct(uuid.New(), "SKU-001", "Steel Bolt M8", "pcs")
	require.NoError(t, err)

	product.Quantity = decimal.NewFromInt(10)
	require.NoError(t, product.SetMinStock(decimal.NewFromInt(4)))

	t.Run("can fulfill within stock", func(t *testing.T) {
		assert.True(t, product.CanFulfill(decimal.NewFromInt(10)))
		assert.False(t, product.CanFulfill(decimal.NewFromInt(11)))
	})

	t.Run("below minimum detection", func(t *testing.T) {
		assert.False(t, product.IsBelowMinimum())
		product.Quantity = decimal.NewFromInt(3)
		assert.True(t, product.IsBelowMinimum())
	})

	t.Run("stock value is quantity times cost", func(t *testing.T) {
		product.Quantity = decimal.NewFromInt(6)
		require.NoError(t, product.SetPrices(decimal.NewFromInt(2), decimal.NewFromInt(5)))
		assert.True(t, product.StockValue().Equal(decimal.NewFromInt(12)))
	})
}
