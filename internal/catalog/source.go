package catalog

import "context"

// Source is a catalog data source. List applies category and search
// filtering plus ordering on the source side.
type Source interface {
	// Name labels the source in logs and metrics.
	Name() string
	List(ctx context.Context, q Query) ([]Product, error)
	Get(ctx context.Context, id uint) (Product, error)
	Categories(ctx context.Context) ([]Category, error)
}
