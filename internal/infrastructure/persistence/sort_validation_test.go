package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted fields", func(t *testing.T) {
		assert.Equal(t, "quantity", ValidateSortField("quantity", ProductSortFields, "name"))
	})

	t.Run("falls back on unknown fields", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("quantity; DROP TABLE products", ProductSortFields, "name"))
		assert.Equal(t, "name", ValidateSortField("", ProductSortFields, "name"))
	})
}
