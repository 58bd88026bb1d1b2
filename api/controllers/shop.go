package controllers

import (
	"net/http"

	"github.com/angelmondragon/sweetshop-backend/api/middleware"
	"github.com/angelmondragon/sweetshop-backend/api/responses"
	"github.com/angelmondragon/sweetshop-backend/api/validators"
	"github.com/angelmondragon/sweetshop-backend/internal/shopstate"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"github.com/angelmondragon/sweetshop-backend/pkg/logger"
)

type addToCartRequest struct {
	SweetID  uint `json:"sweet_id" validate:"required"`
	Quantity int  `json:"quantity"`
}

type wishlistToggleResponse struct {
	Wishlisted bool            `json:"wishlisted"`
	View       *shopstate.View `json:"shop"`
}

func shopperID(r *http.Request) (string, error) {
	id := middleware.UserIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return id, nil
}

// ShopView returns the caller's cart and wishlist.
func ShopView(svc *shopstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.View(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ShopAddToCart adds quantity (default 1) of a sweet to the cart.
func ShopAddToCart(svc *shopstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body := addToCartRequest{Quantity: 1}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.AddToCart(r.Context(), userID, body.SweetID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ShopRemoveFromCart(svc *shopstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.RemoveFromCart(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ShopToggleWishlist(svc *shopstate.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := shopperID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		added, view, err := svc.ToggleWishlist(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistToggleResponse{Wishlisted: added, View: view})
	}
}
