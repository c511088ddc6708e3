package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/backend/internal/domain/shared"
)

func TestSupplierService(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("create and fetch", func(t *testing.T) {
		m := newMemStore()
		svc := NewSupplierService((*memSupplierRepo)(m))

		created, err := svc.Create(ctx, userID, CreateSupplierRequest{
			Name:  "Globex",
			Email: "sales@globex.test",
		})
		require.NoError(t, err)

		fetched, err := svc.GetByID(ctx, userID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Globex", fetched.Name)
		assert.Equal(t, "sales@globex.test", fetched.Email)
	})

	t.Run("update", func(t *testing.T) {
		m := newMemStore()
		svc := NewSupplierService((*memSupplierRepo)(m))

		created, err := svc.Create(ctx, userID, CreateSupplierRequest{Name: "Globex"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, userID, created.ID, UpdateSupplierRequest{
			Name: "Globex Corp", Phone: "555-0199",
		})
		require.NoError(t, err)
		assert.Equal(t, "Globex Corp", updated.Name)
		assert.Equal(t, "555-0199", updated.Phone)
	})

	t.Run("other user's supplier is invisible", func(t *testing.T) {
		m := newMemStore()
		svc := NewSupplierService((*memSupplierRepo)(m))

		created, err := svc.Create(ctx, userID, CreateSupplierRequest{Name: "Globex"})
		require.NoError(t, err)

		_, err = svc.GetByID(ctx, uuid.New(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		m := newMemStore()
		svc := NewSupplierService((*memSupplierRepo)(m))

		created, err := svc.Create(ctx, userID, CreateSupplierRequest{Name: "Globex"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, userID, created.ID))

		page, err := svc.List(ctx, userID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.Total)
	})
}
