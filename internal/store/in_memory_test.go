package store

import (
	"context"
	"testing"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ProductStore  = (*InMemoryStore)(nil)
	_ CategoryStore = (*InMemoryStore)(nil)
	_ Pinger        = (*InMemoryStore)(nil)
	_ ProductStore  = (*PgStore)(nil)
	_ CategoryStore = (*PgStore)(nil)
	_ Pinger        = (*PgStore)(nil)
)

func ptr[T any](v T) *T {
	return &v
}

func Test_InMemoryStore_ProductLifecycle(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewInMemoryStore()
	tools, err := s.CreateCategory(ctx, db.CreateCategoryParams{Name: "Tools", Description: ptr("Hand tools")})
	require.NoError(t, err)

	// when
	created, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Hammer", Price: 12.5, CategoryID: &tools.ID})

	// then
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Category())
	assert.Equal(t, "Tools", created.Category().Name)
	assert.Equal(t, "Hand tools", *created.Category().Description)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.FindProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	updated, err := s.UpdateProduct(ctx, db.UpdateProductParams{ID: created.ID, Name: "Claw Hammer", Price: 15})
	require.NoError(t, err)
	assert.Equal(t, "Claw Hammer", updated.Name)
	assert.Nil(t, updated.Category())

	require.NoError(t, s.DeleteProductByID(ctx, created.ID))
	_, err = s.FindProductByID(ctx, created.ID)
	assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProductByID(ctx, created.ID), catalogerrors.ErrProductNotFound)
}

func Test_InMemoryStore_PriceIsRoundedToCents(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	testCases := map[float64]float64{
		0.129:   0.13,
		9.999:   10,
		12.3456: 12.35,
		1.004:   1,
		25.5:    25.5,
	}
	for in, expected := range testCases {
		created, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Nail", Price: in})
		require.NoError(t, err)
		assert.Equal(t, expected, created.Price, "create %v", in)

		updated, err := s.UpdateProduct(ctx, db.UpdateProductParams{ID: created.ID, Name: "Nail", Price: in})
		require.NoError(t, err)
		assert.Equal(t, expected, updated.Price, "update %v", in)
	}
}

func Test_InMemoryStore_MissingReferences(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Saw", Price: 1, CategoryID: ptr(int64(99))})
	assert.EqualError(t, err, "Category not found with id: 99")
	assert.ErrorIs(t, err, catalogerrors.ErrCategoryNotFound)

	count, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "nothing is persisted on a dangling category")

	_, err = s.UpdateProduct(ctx, db.UpdateProductParams{ID: 5, Name: "Saw", Price: 1})
	assert.EqualError(t, err, "Product not found with id: 5")

	_, err = s.FindCategoryByID(ctx, 3)
	assert.ErrorIs(t, err, catalogerrors.ErrCategoryNotFound)
}

func Test_InMemoryStore_UpdateWithMissingCategoryKeepsProduct(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	created, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Saw", Price: 3})
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, db.UpdateProductParams{ID: created.ID, Name: "Changed", Price: 4, CategoryID: ptr(int64(42))})
	require.ErrorIs(t, err, catalogerrors.ErrCategoryNotFound)

	found, err := s.FindProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Saw", found.Name)
	assert.Equal(t, 3.0, found.Price)
}

func Test_InMemoryStore_FindProducts(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for _, p := range []db.CreateProductParams{
		{Name: "Chisel", Price: 8},
		{Name: "Anvil", Price: 120},
		{Name: "Bolt", Price: 0.5},
		{Name: "Drill", Price: 8},
	} {
		_, err := s.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	testCases := []struct {
		name     string
		params   db.ListProductsParams
		expected []string
	}{
		{name: "default order is id", params: db.ListProductsParams{Limit: 10}, expected: []string{"Chisel", "Anvil", "Bolt", "Drill"}},
		{name: "by name", params: db.ListProductsParams{Limit: 10, SortField: db.SortByName}, expected: []string{"Anvil", "Bolt", "Chisel", "Drill"}},
		{name: "by price desc with id tiebreak", params: db.ListProductsParams{Limit: 10, SortField: db.SortByPrice, SortDesc: true}, expected: []string{"Anvil", "Chisel", "Drill", "Bolt"}},
		{name: "second page", params: db.ListProductsParams{Limit: 3, Offset: 3}, expected: []string{"Drill"}},
		{name: "past the end", params: db.ListProductsParams{Limit: 3, Offset: 9}, expected: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := s.FindProducts(ctx, tc.params)
			require.NoError(t, err)
			names := make([]string, 0, len(rows))
			for _, r := range rows {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}

	_, err := s.FindProducts(ctx, db.ListProductsParams{Limit: 1, SortField: "stock"})
	assert.Error(t, err)
}

func Test_InMemoryStore_Categories(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, err := s.CreateCategory(ctx, db.CreateCategoryParams{Name: "Tools"})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, db.CreateCategoryParams{Name: "Garden"})
	require.NoError(t, err)

	_, err = s.CreateCategory(ctx, db.CreateCategoryParams{Name: "Tools"})
	assert.ErrorIs(t, err, catalogerrors.ErrInvalidInput)

	list, err := s.FindCategories(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Garden", list[0].Name)

	count, err := s.CountCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func Test_InMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	c, err := s.CreateCategory(ctx, db.CreateCategoryParams{Name: "Tools"})
	require.NoError(t, err)
	created, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Hammer", Price: 1, CategoryID: &c.ID})
	require.NoError(t, err)

	*created.CategoryID = 77

	found, err := s.FindProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, *found.CategoryID)
}
