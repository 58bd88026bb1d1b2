package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/angelmondragon/sweetshop-backend/api/responses"
	"github.com/angelmondragon/sweetshop-backend/api/validators"
	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
)

const (
	maxSearchLen   = 100
	maxCategoryLen = 64

	broadenedHeader = "X-Catalog-Broadened"
)

// CatalogResolver resolves a query with the search fallback.
type CatalogResolver interface {
	ResolveDetailed(ctx context.Context, q catalog.Query) (catalog.Result, error)
}

type categoryLoader interface {
	Load(ctx context.Context) []catalog.Category
}

// CatalogList serves the storefront listing: the shopper selection is turned
// into a query and resolved with the search fallback.
func CatalogList(resolver CatalogResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		values := r.URL.Query()
		sortKey, err := enums.ParseSortKey(values.Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").
				WithDetails(map[string]string{"sort": "must be one of name, price-low, price-high"}))
			return
		}

		q := catalog.BuildQuery(catalog.Selection{
			SelectedCategory: validators.SanitizeQuery(values, "category", maxCategoryLen),
			SearchQuery:      validators.SanitizeQuery(values, "search", maxSearchLen),
			SortBy:           sortKey,
		})

		res, err := resolver.ResolveDetailed(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(broadenedHeader, strconv.FormatBool(res.Broadened))
		responses.WriteSuccess(w, nonNilProducts(res.Products))
	}
}

// CatalogRaw exposes a source's List directly. It is the wire contract the
// remote catalog client consumes, so no fallback runs here.
func CatalogRaw(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		field, err := enums.ParseSortField(values.Get("sort_by"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort_by"))
			return
		}
		order, err := enums.ParseSortOrder(values.Get("sort_order"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort_order"))
			return
		}

		q := catalog.Query{
			Category:  validators.SanitizeQuery(values, "category", maxCategoryLen),
			Search:    validators.SanitizeQuery(values, "search", maxSearchLen),
			SortField: field,
			SortOrder: order,
		}
		products, err := source.List(r.Context(), q.Normalized())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nonNilProducts(products))
	}
}

func CatalogGet(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := source.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// Categories returns the source's categories as stored.
func Categories(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := source.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if categories == nil {
			categories = []catalog.Category{}
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryOptions returns the selector options. It never fails: the loader
// substitutes defaults on error.
func CategoryOptions(loader categoryLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, loader.Load(r.Context()))
	}
}

func nonNilProducts(products []catalog.Product) []catalog.Product {
	if products == nil {
		return []catalog.Product{}
	}
	return products
}
