package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
)

// SweetReader is the read side of the sweets repository.
type SweetReader interface {
	ListSweets(ctx context.Context, category, search string) ([]models.Sweet, error)
	FindByID(ctx context.Context, id uint) (*models.Sweet, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// RepositorySource serves the catalog from the database. The category
// filter runs in SQL. Search and ordering use the same Unicode case folding
// and comparator as every other source, so results do not depend on the
// backend's LOWER() or collation.
type RepositorySource struct {
	repo SweetReader
}

func NewRepositorySource(repo SweetReader) (*RepositorySource, error) {
	if repo == nil {
		return nil, fmt.Errorf("sweet repository required")
	}
	return &RepositorySource{repo: repo}, nil
}

func (s *RepositorySource) Name() string { return "db" }

func (s *RepositorySource) List(ctx context.Context, q Query) ([]Product, error) {
	q = q.Normalized()
	rows, err := s.repo.ListSweets(ctx, q.Category, "")
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	out = FilterProducts(out, q)
	SortProducts(out, q.SortField, q.SortOrder)
	return out, nil
}

func (s *RepositorySource) Get(ctx context.Context, id uint) (Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return FromModel(*row), nil
}

func (s *RepositorySource) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.Slug, Name: row.Name, Count: counts[row.Name]})
	}
	return out, nil
}
