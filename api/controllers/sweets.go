package controllers

import (
	"net/http"

	"github.com/angelmondragon/sweetshop-backend/api/responses"
	"github.com/angelmondragon/sweetshop-backend/api/validators"
	"github.com/angelmondragon/sweetshop-backend/internal/sweets"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
	"github.com/angelmondragon/sweetshop-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

type createSweetRequest struct {
	Name               string           `json:"name" validate:"required,max=128"`
	Category           string           `json:"category" validate:"required,max=64"`
	PricePerKg         *decimal.Decimal `json:"price_per_kg" validate:"required"`
	OriginalPricePerKg *decimal.Decimal `json:"original_price_per_kg"`
	Description        string           `json:"description" validate:"max=2000"`
	Stock              int              `json:"stock" validate:"min=0"`
	Featured           bool             `json:"featured"`
	Ingredients        []string         `json:"ingredients" validate:"max=50,dive,max=64"`
	Weight             string           `json:"weight" validate:"max=32"`
}

type updateSweetRequest struct {
	Name               *string          `json:"name" validate:"omitempty,max=128"`
	Category           *string          `json:"category" validate:"omitempty,max=64"`
	PricePerKg         *decimal.Decimal `json:"price_per_kg"`
	OriginalPricePerKg *decimal.Decimal `json:"original_price_per_kg"`
	Description        *string          `json:"description" validate:"omitempty,max=2000"`
	Stock              *int             `json:"stock" validate:"omitempty,min=0"`
	Featured           *bool            `json:"featured"`
	Ingredients        *[]string        `json:"ingredients"`
	Weight             *string          `json:"weight" validate:"omitempty,max=32"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// newQuantityRequest defaults quantity to 1 when the field is omitted.
func newQuantityRequest() quantityRequest {
	return quantityRequest{Quantity: 1}
}

// AdminSweetList pages through inventory, optionally by price range.
func AdminSweetList(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		page, err := pagination.Parse(values.Get("skip"), values.Get("limit"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, validationError(err, "invalid pagination"))
			return
		}
		minPrice, err := validators.ParseQueryDecimal(r, "min_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), sweets.ListInput{Pagination: page, MinPrice: minPrice, MaxPrice: maxPrice})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Items, result.Pagination, int(result.Total))
	}
}

func AdminSweetCreate(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createSweetRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), sweets.CreateInput{
			Name:               body.Name,
			Category:           body.Category,
			PricePerKg:         *body.PricePerKg,
			OriginalPricePerKg: body.OriginalPricePerKg,
			Description:        body.Description,
			Stock:              body.Stock,
			Featured:           body.Featured,
			Ingredients:        body.Ingredients,
			Weight:             body.Weight,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminSweetUpdate(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateSweetRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, sweets.UpdateInput{
			Name:               body.Name,
			Category:           body.Category,
			PricePerKg:         body.PricePerKg,
			OriginalPricePerKg: body.OriginalPricePerKg,
			Description:        body.Description,
			Stock:              body.Stock,
			Featured:           body.Featured,
			Ingredients:        body.Ingredients,
			Weight:             body.Weight,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminSweetDelete(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func AdminSweetRestock(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body := newQuantityRequest()
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Restock(r.Context(), id, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// SweetPurchase decrements stock for a signed-in shopper.
func SweetPurchase(svc sweets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body := newQuantityRequest()
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Purchase(r.Context(), id, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
