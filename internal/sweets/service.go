package sweets

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/pkg/db"
	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/sweetshop-backend/pkg/db/types"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/pagination"
)

const duplicateMessage = "Sweet with same name & category already exists"

// Service exposes inventory management for sweets.
type Service interface {
	Get(ctx context.Context, id uint) (*catalog.Product, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Create(ctx context.Context, input CreateInput) (*catalog.Product, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*catalog.Product, error)
	Delete(ctx context.Context, id uint) error
	Purchase(ctx context.Context, id uint, quantity int) (*catalog.Product, error)
	Restock(ctx context.Context, id uint, quantity int) (*catalog.Product, error)
}

// CreateInput holds the validated payload to add a sweet.
type CreateInput struct {
	Name               string
	Category           string
	PricePerKg         decimal.Decimal
	OriginalPricePerKg *decimal.Decimal
	Description        string
	Stock              int
	Featured           bool
	Ingredients        []string
	Weight             string
}

// UpdateInput holds optional mutation values. Nil fields are left unchanged.
type UpdateInput struct {
	Name               *string
	Category           *string
	PricePerKg         *decimal.Decimal
	OriginalPricePerKg *decimal.Decimal
	Description        *string
	Stock              *int
	Featured           *bool
	Ingredients        *[]string
	Weight             *string
}

// ListInput pages through the inventory with an optional price range.
type ListInput struct {
	Pagination pagination.Params
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ListResult is one page of inventory.
type ListResult struct {
	Items      []catalog.Product
	Total      int64
	Pagination pagination.Params
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs the sweets service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sweet repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*catalog.Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProduct(row), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.MinPrice != nil && input.MaxPrice != nil && input.MinPrice.GreaterThan(*input.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}
	params := input.Pagination.Normalize()
	rows, total, err := s.repo.ListPaged(ctx, params, PriceRange{Min: input.MinPrice, Max: input.MaxPrice})
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, catalog.FromModel(row))
	}
	return &ListResult{Items: items, Total: total, Pagination: params}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*catalog.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validatePrice(input.PricePerKg, input.OriginalPricePerKg); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if err := s.ensureCategory(ctx, input.Category); err != nil {
		return nil, err
	}

	sweet := &models.Sweet{
		Name:        input.Name,
		Category:    input.Category,
		PricePerKg:  input.PricePerKg,
		Description: strings.TrimSpace(input.Description),
		Stock:       input.Stock,
		Featured:    input.Featured,
		Ingredients: dbtypes.StringList(input.Ingredients),
		Weight:      strings.TrimSpace(input.Weight),
	}
	if input.OriginalPricePerKg != nil {
		sweet.OriginalPricePerKg = decimal.NewNullDecimal(*input.OriginalPricePerKg)
	}

	if err := s.repo.Create(ctx, sweet); err != nil {
		return nil, mapWriteError(err, "db: insert sweet")
	}
	return toProduct(sweet), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*catalog.Product, error) {
	var updated *models.Sweet
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sweet, err := txRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyUpdate(sweet, input); err != nil {
			return err
		}
		if input.Category != nil {
			if err := txRepo.ensureCategory(ctx, sweet.Category); err != nil {
				return err
			}
		}
		if err := txRepo.Save(ctx, sweet); err != nil {
			return mapWriteError(err, "db: update sweet")
		}
		updated = sweet
		return nil
	})
	if err != nil {
		return nil, txError(err, "update sweet")
	}
	return toProduct(updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Purchase removes quantity from stock. It fails with CodeOutOfStock when
// fewer units remain.
func (s *service) Purchase(ctx context.Context, id uint, quantity int) (*catalog.Product, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be positive")
	}
	return s.adjust(ctx, id, -quantity)
}

// Restock adds quantity to stock.
func (s *service) Restock(ctx context.Context, id uint, quantity int) (*catalog.Product, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be positive")
	}
	return s.adjust(ctx, id, quantity)
}

func (s *service) adjust(ctx context.Context, id uint, delta int) (*catalog.Product, error) {
	var result *models.Sweet
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		sweet, err := txRepo.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if sweet.Stock+delta < 0 {
			return outOfStock(sweet.Stock, -delta)
		}
		ok, err := txRepo.AdjustStock(ctx, id, delta)
		if err != nil {
			return err
		}
		if !ok {
			return outOfStock(sweet.Stock, -delta)
		}
		result, err = txRepo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, txError(err, "adjust stock")
	}
	return toProduct(result), nil
}

func (s *service) ensureCategory(ctx context.Context, name string) error {
	return s.repo.ensureCategory(ctx, name)
}

func (r *Repository) ensureCategory(ctx context.Context, name string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if _, err := r.FindCategoryByName(ctx, name); err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
				WithDetails(map[string]any{"category": name})
		}
		return err
	}
	return nil
}

func applyUpdate(sweet *models.Sweet, input UpdateInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		sweet.Name = name
	}
	if input.Category != nil {
		sweet.Category = strings.TrimSpace(*input.Category)
	}
	if input.PricePerKg != nil {
		sweet.PricePerKg = *input.PricePerKg
	}
	if input.OriginalPricePerKg != nil {
		sweet.OriginalPricePerKg = decimal.NewNullDecimal(*input.OriginalPricePerKg)
	}
	var original *decimal.Decimal
	if sweet.OriginalPricePerKg.Valid {
		original = &sweet.OriginalPricePerKg.Decimal
	}
	if err := validatePrice(sweet.PricePerKg, original); err != nil {
		return err
	}
	if input.Description != nil {
		sweet.Description = strings.TrimSpace(*input.Description)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		sweet.Stock = *input.Stock
	}
	if input.Featured != nil {
		sweet.Featured = *input.Featured
	}
	if input.Ingredients != nil {
		sweet.Ingredients = dbtypes.StringList(append([]string(nil), (*input.Ingredients)...))
	}
	if input.Weight != nil {
		sweet.Weight = strings.TrimSpace(*input.Weight)
	}
	return nil
}

func validatePrice(price decimal.Decimal, original *decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price_per_kg cannot be negative")
	}
	if original != nil && original.LessThan(price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "original_price_per_kg cannot be below price_per_kg")
	}
	return nil
}

func outOfStock(available, requested int) error {
	return pkgerrors.New(pkgerrors.CodeOutOfStock, "Not enough stock").
		WithDetails(map[string]any{"available": available, "requested": requested})
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "idx_sweets_name_category") {
		return pkgerrors.New(pkgerrors.CodeConflict, duplicateMessage)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

func txError(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

func toProduct(row *models.Sweet) *catalog.Product {
	p := catalog.FromModel(*row)
	return &p
}
