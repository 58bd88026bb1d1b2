package shopstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
)

type productGetter interface {
	Get(ctx context.Context, id uint) (catalog.Product, error)
}

// Item is a cart line joined with its product.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// View is the shopper state returned to clients.
type View struct {
	Items     []Item            `json:"items"`
	CartCount int               `json:"cart_count"`
	Wishlist  []catalog.Product `json:"wishlist"`
}

// Service applies shopper actions against a Store, checking products and
// stock on the way in.
type Service struct {
	store    Store
	products productGetter
}

func NewService(store Store, products productGetter) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("shopstate store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	return &Service{store: store, products: products}, nil
}

func (s *Service) AddToCart(ctx context.Context, userID string, sweetID uint, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Quantity must be positive")
	}
	product, err := s.products.Get(ctx, sweetID)
	if err != nil {
		return nil, err
	}

	inCart, err := s.store.AddToCart(ctx, userID, sweetID, quantity, product.Stock)
	if errors.Is(err, ErrCartLimit) {
		return nil, pkgerrors.New(pkgerrors.CodeOutOfStock, "Not enough stock").
			WithDetails(map[string]any{"available": product.Stock, "in_cart": inCart, "requested": quantity})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
	}
	return s.View(ctx, userID)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID string, sweetID uint) (*View, error) {
	if err := s.store.RemoveFromCart(ctx, userID, sweetID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
	}
	return s.View(ctx, userID)
}

// ToggleWishlist flips sweetID on the wishlist and reports whether it is
// now present.
func (s *Service) ToggleWishlist(ctx context.Context, userID string, sweetID uint) (bool, *View, error) {
	if _, err := s.products.Get(ctx, sweetID); err != nil {
		return false, nil, err
	}
	added, err := s.store.ToggleWishlist(ctx, userID, sweetID)
	if err != nil {
		return false, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wishlist")
	}
	view, err := s.View(ctx, userID)
	if err != nil {
		return false, nil, err
	}
	return added, view, nil
}

// View joins the stored state with current products. Sweets that no longer
// exist are left out.
func (s *Service) View(ctx context.Context, userID string) (*View, error) {
	snap, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shopper state")
	}

	view := &View{Items: []Item{}, Wishlist: []catalog.Product{}}
	for _, line := range snap.Cart {
		product, err := s.lookup(ctx, line.SweetID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		view.Items = append(view.Items, Item{Product: *product, Quantity: line.Quantity})
		view.CartCount += line.Quantity
	}
	for _, id := range snap.Wishlist {
		product, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			view.Wishlist = append(view.Wishlist, *product)
		}
	}
	return view, nil
}

func (s *Service) lookup(ctx context.Context, id uint) (*catalog.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
