package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name, price, category string) Product {
	return Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func TestMemStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	first, err := s.Create(ctx, newProduct("Widget", "9.99", "Misc"))
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)

	second, err := s.Create(ctx, newProduct("Gadget", "19.99", "Misc"))
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestMemStore_IDsNotReusedAfterDelete(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newProduct("Widget", "9.99", "Misc"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newProduct("Gadget", "19.99", "Misc"))
	require.NoError(t, err)

	found, err := s.Delete(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)

	third, err := s.Create(ctx, newProduct("Doohickey", "4.99", "Misc"))
	require.NoError(t, err)
	assert.Equal(t, "3", third.ID)

	_, ok, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemStore_ListFiltersByExactCategory(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newProduct("Laptop", "999.99", "Electronics"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newProduct("Mug", "7.50", "Kitchen"))
	require.NoError(t, err)
	_, err = s.Create(ctx, newProduct("Mouse", "29.99", "Electronics"))
	require.NoError(t, err)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	electronics, err := s.List(ctx, "Electronics")
	require.NoError(t, err)
	require.Len(t, electronics, 2)
	assert.Equal(t, "Laptop", electronics[0].Name)
	assert.Equal(t, "Mouse", electronics[1].Name)

	none, err := s.List(ctx, "electronics")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemStore_UpdateReplacesRecord(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newProduct("Widget", "9.99", "Misc"))
	require.NoError(t, err)

	updated, found, err := s.Update(ctx, created.ID, newProduct("Widget Pro", "14.99", "Tools"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Widget Pro", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("14.99")))
	assert.Equal(t, "Tools", updated.Category)

	got, ok, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, updated, got)

	_, found, err = s.Update(ctx, "999", newProduct("Nope", "1.00", "Misc"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemStore_DeleteMissing(t *testing.T) {
	s := NewMemStore()

	found, err := s.Delete(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, found)
}
