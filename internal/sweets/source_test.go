package sweets

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
)

func TestRepositorySourceMatchesMemorySource(t *testing.T) {
	src, err := catalog.NewRepositorySource(NewRepository(openSeededDB(t)))
	require.NoError(t, err)
	mem := catalog.NewMemorySource(catalog.MemoryOptions{})
	ctx := context.Background()

	queries := []catalog.Query{
		{SortField: enums.SortFieldName, SortOrder: enums.SortOrderAsc},
		{SortField: enums.SortFieldPrice, SortOrder: enums.SortOrderDesc},
		{Category: "Gummies", SortField: enums.SortFieldPrice, SortOrder: enums.SortOrderAsc},
		{Search: "chocolate", SortField: enums.SortFieldName, SortOrder: enums.SortOrderDesc},
		{Category: "Chocolates", Search: "ladoo"},
	}
	for _, q := range queries {
		want, err := mem.List(ctx, q)
		require.NoError(t, err)
		got, err := src.List(ctx, q)
		require.NoError(t, err)

		wantIDs := make([]uint, len(want))
		for i, p := range want {
			wantIDs[i] = p.ID
		}
		gotIDs := make([]uint, len(got))
		for i, p := range got {
			gotIDs[i] = p.ID
		}
		assert.Equal(t, wantIDs, gotIDs, "query %+v", q)
	}
}

func TestRepositorySourceSearchFoldsNonASCII(t *testing.T) {
	conn := openSeededDB(t)
	row := catalog.ToModel(catalog.Product{
		Name:       "ÉCLAIR AU CHOCOLAT",
		Category:   "Chocolates",
		PricePerKg: decimal.NewFromInt(1800),
		Stock:      5,
	})
	require.NoError(t, conn.Create(&row).Error)

	src, err := catalog.NewRepositorySource(NewRepository(conn))
	require.NoError(t, err)
	got, err := src.List(context.Background(), catalog.Query{Search: "éclair"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ÉCLAIR AU CHOCOLAT", got[0].Name)
}

func TestRepositorySourceResolverFallback(t *testing.T) {
	src, err := catalog.NewRepositorySource(NewRepository(openSeededDB(t)))
	require.NoError(t, err)
	r, err := catalog.NewResolver(catalog.ResolverParams{Source: src})
	require.NoError(t, err)

	got, err := r.Resolve(context.Background(), catalog.BuildQuery(catalog.Selection{
		SelectedCategory: "Chocolates",
		SortBy:           enums.SortKeyName,
		SearchQuery:      "ladoo",
	}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Motichoor Ladoo", got[0].Name)
}

func TestRepositorySourceCategoriesAndGet(t *testing.T) {
	src, err := catalog.NewRepositorySource(NewRepository(openSeededDB(t)))
	require.NoError(t, err)
	ctx := context.Background()

	cats, err := src.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.Category{ID: "cupcakes", Name: "Cupcakes", Count: 2}, cats[2])

	loader, err := catalog.NewCategoryLoader(src, nil)
	require.NoError(t, err)
	opts := loader.Load(ctx)
	require.Len(t, opts, 6)
	assert.Equal(t, 11, opts[0].Count)

	p, err := src.Get(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "Red Velvet Cupcake", p.Name)
	require.NotNil(t, p.Rating)
	assert.Equal(t, "4.8", p.Rating.String())
}
