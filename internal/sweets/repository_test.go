package sweets

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/pagination"
)

func TestRepositoryListSweetsFilters(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	ctx := context.Background()

	all, err := repo.ListSweets(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 11)

	choc, err := repo.ListSweets(ctx, "Chocolates", "")
	require.NoError(t, err)
	require.Len(t, choc, 2)
	assert.Equal(t, "Hazelnut Pralines", choc[0].Name)

	ladoo, err := repo.ListSweets(ctx, "", "LaDoO")
	require.NoError(t, err)
	require.Len(t, ladoo, 1)
	assert.Equal(t, "Motichoor Ladoo", ladoo[0].Name)

	byDescription, err := repo.ListSweets(ctx, "", "paneer")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Sandesh", byDescription[0].Name)

	none, err := repo.ListSweets(ctx, "Chocolates", "ladoo")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryListSweetsEscapesWildcards(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	rows, err := repo.ListSweets(context.Background(), "", "%")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.ListSweets(context.Background(), "", "_")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	_, err := repo.FindByID(context.Background(), 999)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestRepositoryCategoriesAndCounts(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "indian", cats[0].Slug)

	counts, err := repo.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Indian Sweets": 3,
		"Chocolates":    2,
		"Cupcakes":      2,
		"Gummies":       2,
		"Candies":       2,
	}, counts)
}

func TestRepositoryListPaged(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	ctx := context.Background()

	rows, total, err := repo.ListPaged(ctx, pagination.Params{Skip: 2, Limit: 3}, PriceRange{})
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
	require.Len(t, rows, 3)
	assert.EqualValues(t, 3, rows[0].ID)

	lo := decimal.NewFromInt(700)
	hi := decimal.NewFromInt(900)
	rows, total, err = repo.ListPaged(ctx, pagination.Params{}, PriceRange{Min: &lo, Max: &hi})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Besan Barfi", "Sandesh", "Sour Worms", "Fruit Rings"}, names)
}

func TestRepositoryAdjustStockRefusesNegative(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	ctx := context.Background()

	ok, err := repo.AdjustStock(ctx, 3, -21)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AdjustStock(ctx, 3, -20)
	require.NoError(t, err)
	assert.True(t, ok)

	row, err := repo.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, row.Stock)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	repo := NewRepository(openSeededDB(t))
	err := repo.Delete(context.Background(), 404)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
