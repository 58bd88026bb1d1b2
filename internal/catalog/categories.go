package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
)

// CategoryLoader produces the category option list for the storefront.
type CategoryLoader struct {
	source Source
	logg   *logger.Logger
}

func NewCategoryLoader(source Source, logg *logger.Logger) (*CategoryLoader, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &CategoryLoader{source: source, logg: logg}, nil
}

// Load returns the source categories behind a synthetic "All Categories"
// entry. On any failure it logs a warning and returns DefaultCategories.
func (l *CategoryLoader) Load(ctx context.Context) []Category {
	categories, err := l.source.Categories(ctx)
	if err != nil {
		ctx = l.logg.WithFields(ctx, map[string]any{
			"catalog_source": l.source.Name(),
			"error":          err.Error(),
		})
		l.logg.Warn(ctx, "catalog.categories_fallback")
		return DefaultCategories()
	}

	total := 0
	out := make([]Category, 0, len(categories)+1)
	out = append(out, Category{ID: AllCategoryID, Name: "All Categories"})
	for _, c := range categories {
		if c.ID == AllCategoryID {
			continue
		}
		total += c.Count
		out = append(out, c)
	}
	out[0].Count = total
	return out
}
