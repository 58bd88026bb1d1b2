package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedResolver blocks each call until the test releases it.
type gatedResolver struct {
	started chan Query
	release map[string]chan result
}

type result struct {
	products []Product
	err      error
}

func newGatedResolver(keys ...string) *gatedResolver {
	g := &gatedResolver{started: make(chan Query, len(keys)), release: map[string]chan result{}}
	for _, k := range keys {
		g.release[k] = make(chan result, 1)
	}
	return g
}

func (g *gatedResolver) Resolve(ctx context.Context, q Query) ([]Product, error) {
	g.started <- q
	r := <-g.release[q.Search]
	return r.products, r.err
}

func TestViewDiscardsStaleRefresh(t *testing.T) {
	g := newGatedResolver("old", "new")
	v := NewView(g)
	ctx := context.Background()

	oldDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "old"})
		oldDone <- err
	}()
	<-g.started

	newDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "new"})
		newDone <- err
	}()
	<-g.started

	g.release["new"] <- result{products: []Product{{Name: "fresh"}}}
	require.NoError(t, <-newDone)

	g.release["old"] <- result{products: []Product{{Name: "stale"}}}
	require.ErrorIs(t, <-oldDone, ErrStale)

	assert.Equal(t, []string{"fresh"}, names(v.Products()))
	assert.Equal(t, "new", v.Selection().SearchQuery)
	assert.Equal(t, uint64(2), v.Committed())
}

func TestViewErrorKeepsPreviousList(t *testing.T) {
	boom := errors.New("source down")
	g := newGatedResolver("ok", "bad")
	v := NewView(g)
	ctx := context.Background()

	g.release["ok"] <- result{products: []Product{{Name: "Sandesh"}}}
	got, err := v.Refresh(ctx, Selection{SearchQuery: "ok"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sandesh"}, names(got))

	g.release["bad"] <- result{err: boom}
	_, err = v.Refresh(ctx, Selection{SearchQuery: "bad"})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"Sandesh"}, names(v.Products()))
	assert.Equal(t, "ok", v.Selection().SearchQuery)
}

func TestViewStartsEmpty(t *testing.T) {
	v := NewView(newGatedResolver())
	assert.NotNil(t, v.Products())
	assert.Empty(t, v.Products())
	assert.Zero(t, v.Committed())
}

func TestViewWithMemorySource(t *testing.T) {
	r, err := NewResolver(ResolverParams{Source: NewMemorySource(MemoryOptions{})})
	require.NoError(t, err)
	v := NewView(r)

	got, err := v.Refresh(context.Background(), Selection{SelectedCategory: "Gummies"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fruit Rings", "Sour Worms"}, names(got))
}

func TestViewDiscardsOlderRefreshWhileNewerInFlight(t *testing.T) {
	g := newGatedResolver("old", "new")
	v := NewView(g)
	ctx := context.Background()

	oldDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "old"})
		oldDone <- err
	}()
	<-g.started

	newDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "new"})
		newDone <- err
	}()
	<-g.started

	g.release["old"] <- result{products: []Product{{Name: "stale"}}}
	require.ErrorIs(t, <-oldDone, ErrStale)
	assert.Empty(t, v.Products())

	g.release["new"] <- result{products: []Product{{Name: "fresh"}}}
	require.NoError(t, <-newDone)
	assert.Equal(t, []string{"fresh"}, names(v.Products()))
	assert.Equal(t, uint64(2), v.Committed())
}

func TestViewDiscardsOlderRefreshAfterNewerFailed(t *testing.T) {
	boom := errors.New("source down")
	g := newGatedResolver("old", "new")
	v := NewView(g)
	ctx := context.Background()

	oldDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "old"})
		oldDone <- err
	}()
	<-g.started

	newDone := make(chan error, 1)
	go func() {
		_, err := v.Refresh(ctx, Selection{SearchQuery: "new"})
		newDone <- err
	}()
	<-g.started

	g.release["new"] <- result{err: boom}
	require.ErrorIs(t, <-newDone, boom)

	g.release["old"] <- result{products: []Product{{Name: "stale"}}}
	require.ErrorIs(t, <-oldDone, ErrStale)

	assert.Empty(t, v.Products())
	assert.Zero(t, v.Committed())
	assert.Empty(t, v.Selection().SearchQuery)
}
