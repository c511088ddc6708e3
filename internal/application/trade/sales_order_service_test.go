package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

func TestSalesOrderServiceCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("confirmed order removes stock and writes ledger rows", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		resp, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(15)))
		require.Len(t, store.ledger, 1)
		ledgerRow := store.ledger[0]
		assert.Equal(t, inventory.TransactionTypeConfirmedSalesOrder, ledgerRow.TransactionType)
		assert.True(t, ledgerRow.Quantity.Equal(decimal.NewFromInt(-5)))
		assert.True(t, ledgerRow.PreviousStock.Equal(decimal.NewFromInt(20)))
		assert.True(t, ledgerRow.NewStock.Equal(decimal.NewFromInt(15)))

		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(500)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(595)), "flat tax applied")
	})

	t.Run("pending order leaves stock untouched", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(20)))
		assert.Empty(t, store.ledger)
	})

	t.Run("insufficient stock rejects a confirmed order", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 3)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(3)))
		assert.Empty(t, store.ledger)
		assert.Empty(t, store.salesOrders)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		store := newMemStore()
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: uuid.New(),
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "CUSTOMER_NOT_FOUND"))
	})

	t.Run("product of another user is rejected", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		foreignProduct := store.addProduct(uuid.New(), "SKU-X", 20)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: foreignProduct, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "PRODUCT_NOT_FOUND"))
	})

	t.Run("duplicate line items are rejected", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
				{ProductID: productID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.ErrorIs(t, err, shared.ErrDuplicateLineItem)
	})
}

func TestSalesOrderServiceUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	seedPending := func(store *memStore, productID uuid.UUID) uuid.UUID {
		customerID := store.addCustomer(userID)
		svc := NewSalesOrderService(store.scope())
		resp, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		return resp.ID
	}

	t.Run("confirming a pending order applies the full stock effect", func(t *testing.T) {
		store := newMemStore()
		productID := store.addProduct(userID, "SKU-1", 20)
		orderID := seedPending(store, productID)
		svc := NewSalesOrderService(store.scope())

		resp, err := svc.Update(ctx, userID, orderID, UpdateSalesOrderRequest{
			Status: trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(7), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(13)))
		require.Len(t, store.ledger, 1)
		assert.Equal(t, inventory.TransactionTypeConfirmedSalesOrder, store.ledger[0].TransactionType)
		assert.Equal(t, trade.SalesOrderStatusConfirmed, resp.Status)
	})

	t.Run("any update of a confirmed order is rejected", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		created, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		// Identical payload: still rejected.
		_, err = svc.Update(ctx, userID, created.ID, UpdateSalesOrderRequest{
			Status: trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.ErrorIs(t, err, shared.ErrInvalidState)
		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(15)), "stock unchanged")
	})

	t.Run("pending updates never move stock", func(t *testing.T) {
		store := newMemStore()
		productID := store.addProduct(userID, "SKU-1", 20)
		other := store.addProduct(userID, "SKU-2", 10)
		orderID := seedPending(store, productID)
		svc := NewSalesOrderService(store.scope())

		_, err := svc.Update(ctx, userID, orderID, UpdateSalesOrderRequest{
			Status: trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: other, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, store.ledger)
	})
}

func TestSalesOrderServiceDelete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deleting a confirmed order restores stock", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		created, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusConfirmed,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)
		require.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(15)))

		require.NoError(t, svc.Delete(ctx, userID, created.ID))

		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(20)))
		require.Len(t, store.ledger, 2)
		assert.Equal(t, inventory.TransactionTypeCancelledSalesOrder, store.ledger[1].TransactionType)
		assert.True(t, store.ledger[1].Quantity.Equal(decimal.NewFromInt(5)))
		assert.Empty(t, store.salesOrders)
	})

	t.Run("deleting a pending order moves no stock", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		created, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, userID, created.ID))
		assert.True(t, store.stockOf(productID).Equal(decimal.NewFromInt(20)))
		assert.Empty(t, store.ledger)
	})

	t.Run("deleting another user's order fails", func(t *testing.T) {
		store := newMemStore()
		customerID := store.addCustomer(userID)
		productID := store.addProduct(userID, "SKU-1", 20)
		svc := NewSalesOrderService(store.scope())

		created, err := svc.Create(ctx, userID, CreateSalesOrderRequest{
			CustomerID: customerID,
			Status:     trade.SalesOrderStatusPending,
			Items: []SalesOrderItemInput{
				{ProductID: productID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, uuid.New(), created.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
