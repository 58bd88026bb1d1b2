package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrStale reports that a refresh finished after a newer one was dispatched.
// Its result was discarded.
var ErrStale = errors.New("catalog: stale refresh discarded")

type queryResolver interface {
	Resolve(ctx context.Context, q Query) ([]Product, error)
}

// View holds the currently displayed product list. Every Refresh takes a
// sequence number when dispatched; a result is committed only if it belongs
// to the most recently dispatched refresh. Failed refreshes leave the
// displayed list untouched.
type View struct {
	resolver queryResolver

	mu        sync.Mutex
	issued    uint64
	committed uint64
	selection Selection
	products  []Product
}

func NewView(resolver queryResolver) *View {
	return &View{resolver: resolver, products: []Product{}}
}

// Refresh resolves sel and commits the result unless a newer refresh was
// dispatched in the meantime.
// It returns the committed list, ErrStale, or the resolver error.
func (v *View) Refresh(ctx context.Context, sel Selection) ([]Product, error) {
	v.mu.Lock()
	v.issued++
	seq := v.issued
	v.mu.Unlock()

	products, err := v.resolver.Resolve(ctx, BuildQuery(sel))

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq < v.issued {
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	v.committed = seq
	v.selection = sel
	v.products = cloneProducts(products)
	return cloneProducts(v.products), nil
}

// Products returns a copy of the displayed list.
func (v *View) Products() []Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneProducts(v.products)
}

// Selection returns the selection behind the displayed list.
func (v *View) Selection() Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection
}

// Committed returns the sequence number of the displayed list.
func (v *View) Committed() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.committed
}
