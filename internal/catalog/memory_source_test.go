package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySourceListHonoursLatencyAndCancel(t *testing.T) {
	src := NewMemorySource(MemoryOptions{ListLatency: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := src.List(ctx, Query{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMemorySourceListDelays(t *testing.T) {
	src := NewMemorySource(MemoryOptions{ListLatency: 15 * time.Millisecond})
	start := time.Now()
	got, err := src.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, got, 11)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestMemorySourceGet(t *testing.T) {
	src := NewMemorySource(MemoryOptions{})

	p, err := src.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Hazelnut Pralines", p.Name)

	_, err = src.Get(context.Background(), 404)
	var typed *pkgerrors.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestMemorySourceResultsAreCopies(t *testing.T) {
	src := NewMemorySource(MemoryOptions{})
	first, err := src.List(context.Background(), Query{})
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := src.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestMemorySourceCustomProducts(t *testing.T) {
	src := NewMemorySource(MemoryOptions{
		Products:   []Product{{ID: 1, Name: "Jalebi", Category: "Indian Sweets", PricePerKg: price(400)}},
		Categories: []Category{{ID: "indian", Name: "Indian Sweets"}, {ID: "candies", Name: "Candies"}},
	})
	cats, err := src.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{
		{ID: "indian", Name: "Indian Sweets", Count: 1},
		{ID: "candies", Name: "Candies", Count: 0},
	}, cats)
}
