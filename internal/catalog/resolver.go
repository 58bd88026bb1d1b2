package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
	"github.com/angelmondragon/sweetshop-backend/pkg/metrics"
)

// Result is a resolved product list plus how it was obtained.
type Result struct {
	Products []Product `json:"products"`
	// Query is the query whose results are in Products.
	Query Query `json:"query"`
	// Broadened is true when the narrow query came back empty and the
	// search-only query was used instead.
	Broadened bool `json:"broadened"`
}

// Resolver runs a query against a Source and broadens it once when a search
// finds nothing under the narrower constraints.
type Resolver struct {
	source  Source
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics
}

type ResolverParams struct {
	Source  Source
	Logger  *logger.Logger
	Metrics *metrics.CatalogMetrics
}

func NewResolver(params ResolverParams) (*Resolver, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Resolver{source: params.Source, logg: logg, metrics: params.Metrics}, nil
}

// Source returns the data source the resolver queries.
func (r *Resolver) Source() Source {
	return r.source
}

// Resolve returns the products to display for q. Errors from the source
// are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, q Query) ([]Product, error) {
	res, err := r.ResolveDetailed(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.Products, nil
}

// ResolveDetailed is Resolve with the effective query and fallback flag.
func (r *Resolver) ResolveDetailed(ctx context.Context, q Query) (Result, error) {
	name := r.source.Name()
	ctx = r.logg.WithFields(ctx, map[string]any{
		"catalog_source": name,
		"category":       q.Category,
		"search":         q.Search,
		"sort_by":        q.SortField,
		"sort_order":     q.SortOrder,
	})

	primary, err := r.list(ctx, q)
	if err != nil {
		r.metrics.IncResolve(name, metrics.OutcomeError)
		return Result{}, err
	}

	if len(primary) > 0 || q.Search == "" {
		outcome := metrics.OutcomeHit
		if len(primary) == 0 {
			outcome = metrics.OutcomeEmpty
		}
		r.metrics.IncResolve(name, outcome)
		r.logg.Debug(ctx, "catalog.resolved")
		return Result{Products: primary, Query: q}, nil
	}

	broad := q.Broadened()
	r.metrics.IncFallback(name)
	r.logg.Debug(ctx, "catalog.fallback")

	products, err := r.list(ctx, broad)
	if err != nil {
		r.metrics.IncResolve(name, metrics.OutcomeError)
		return Result{}, err
	}
	r.metrics.IncResolve(name, metrics.OutcomeFallback)
	return Result{Products: products, Query: broad, Broadened: true}, nil
}

func (r *Resolver) list(ctx context.Context, q Query) ([]Product, error) {
	start := time.Now()
	products, err := r.source.List(ctx, q)
	r.metrics.ObserveSource(r.source.Name(), "list", time.Since(start))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
