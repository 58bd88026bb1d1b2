package catalog

import (
	"context"
	"time"

	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
)

const (
	DefaultListLatency = 300 * time.Millisecond
	DefaultGetLatency  = 200 * time.Millisecond
)

// MemoryOptions configures a MemorySource. Nil Products or Categories fall
// back to the demo fixture. Zero latencies mean no delay.
type MemoryOptions struct {
	Products    []Product
	Categories  []Category
	ListLatency time.Duration
	GetLatency  time.Duration
}

// MemorySource serves a fixed product list with simulated network latency.
// It is safe for concurrent use; the data is never mutated after creation.
type MemorySource struct {
	products    []Product
	categories  []Category
	listLatency time.Duration
	getLatency  time.Duration
}

func NewMemorySource(opts MemoryOptions) *MemorySource {
	products := opts.Products
	if products == nil {
		products = FixtureProducts()
	}
	categories := opts.Categories
	if categories == nil {
		categories = FixtureCategories()
	}
	return &MemorySource{
		products:    cloneProducts(products),
		categories:  append([]Category(nil), categories...),
		listLatency: opts.ListLatency,
		getLatency:  opts.GetLatency,
	}
}

func (s *MemorySource) Name() string { return "memory" }

func (s *MemorySource) List(ctx context.Context, q Query) ([]Product, error) {
	if err := sleep(ctx, s.listLatency); err != nil {
		return nil, err
	}
	q = q.Normalized()
	out := FilterProducts(s.products, q)
	SortProducts(out, q.SortField, q.SortOrder)
	return out, nil
}

func (s *MemorySource) Get(ctx context.Context, id uint) (Product, error) {
	if err := sleep(ctx, s.getLatency); err != nil {
		return Product{}, err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "Sweet not found")
}

func (s *MemorySource) Categories(ctx context.Context) ([]Category, error) {
	if err := sleep(ctx, s.getLatency); err != nil {
		return nil, err
	}
	return withCounts(s.categories, s.products), nil
}

func withCounts(categories []Category, products []Product) []Category {
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Count = counts[c.Name]
		out[i] = c
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
