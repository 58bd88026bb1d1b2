package sweets

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/pagination"
)

const notFoundMessage = "Sweet not found"

// Repository persists sweets and categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListSweets returns sweets in the exact category (when set) whose name or
// description contains search, case-insensitively. Ordering is left to the
// caller.
func (r *Repository) ListSweets(ctx context.Context, category, search string) ([]models.Sweet, error) {
	q := r.db.WithContext(ctx).Model(&models.Sweet{})
	if category = strings.TrimSpace(category); category != "" {
		q = q.Where("category = ?", category)
	}
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var rows []models.Sweet
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sweets")
	}
	return rows, nil
}

// FindByID loads one sweet. Missing rows map to CodeNotFound.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := r.db.WithContext(ctx).First(&sweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sweet")
	}
	return &sweet, nil
}

// ListCategories returns every category in insertion order.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return rows, nil
}

// FindCategoryByName loads a category by its display name.
func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	return &row, nil
}

// CountByCategory returns the number of sweets per category name.
func (r *Repository) CountByCategory(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Category string
		Total    int
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Sweet{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count sweets by category")
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Total
	}
	return out, nil
}

// PriceRange bounds a paged listing. Nil ends are open.
type PriceRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// ListPaged returns one page of sweets ordered by id plus the total row count.
func (r *Repository) ListPaged(ctx context.Context, params pagination.Params, prices PriceRange) ([]models.Sweet, int64, error) {
	params = params.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Sweet{})
	if prices.Min != nil {
		q = q.Where("price_per_kg >= ?", *prices.Min)
	}
	if prices.Max != nil {
		q = q.Where("price_per_kg <= ?", *prices.Max)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count sweets")
	}

	var rows []models.Sweet
	if err := q.Order("id ASC").Offset(params.Skip).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: page sweets")
	}
	return rows, total, nil
}

// Create inserts a new sweet. Unique violations are returned unwrapped so
// the caller can map them.
func (r *Repository) Create(ctx context.Context, sweet *models.Sweet) error {
	return r.db.WithContext(ctx).Create(sweet).Error
}

// Save writes every column of an existing sweet.
func (r *Repository) Save(ctx context.Context, sweet *models.Sweet) error {
	return r.db.WithContext(ctx).Save(sweet).Error
}

// Delete removes a sweet. Missing rows map to CodeNotFound.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Sweet{}, id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: delete sweet")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return nil
}

// AdjustStock adds delta to the stock of a sweet unless the result would go
// negative. It reports whether a row was updated.
func (r *Repository) AdjustStock(ctx context.Context, id uint, delta int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Sweet{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "db: adjust stock")
	}
	return res.RowsAffected > 0, nil
}

// LockByID loads a sweet with a row lock on postgres. Sqlite ignores the
// locking clause and serializes writers instead.
func (r *Repository) LockByID(ctx context.Context, id uint) (*models.Sweet, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var sweet models.Sweet
	if err := q.First(&sweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock sweet")
	}
	return &sweet, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
