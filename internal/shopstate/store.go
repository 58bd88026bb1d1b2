package shopstate

import (
	"context"
	"errors"
	"sort"
)

// ErrCartLimit is returned when an add would push a cart line past its limit.
// The cart is left unchanged.
var ErrCartLimit = errors.New("shopstate: cart line limit exceeded")

// CartLine is one sweet in a shopper's cart.
type CartLine struct {
	SweetID  uint `json:"sweet_id"`
	Quantity int  `json:"quantity"`
}

// Snapshot is the full cart and wishlist for one shopper.
type Snapshot struct {
	Cart     []CartLine `json:"cart"`
	Wishlist []uint     `json:"wishlist"`
}

// CartCount sums the quantities in the cart.
func (s Snapshot) CartCount() int {
	total := 0
	for _, line := range s.Cart {
		total += line.Quantity
	}
	return total
}

// Quantity returns how many units of sweetID are in the cart.
func (s Snapshot) Quantity(sweetID uint) int {
	for _, line := range s.Cart {
		if line.SweetID == sweetID {
			return line.Quantity
		}
	}
	return 0
}

// Wishlisted reports whether sweetID is on the wishlist.
func (s Snapshot) Wishlisted(sweetID uint) bool {
	for _, id := range s.Wishlist {
		if id == sweetID {
			return true
		}
	}
	return false
}

// Store holds per-shopper cart and wishlist state. Implementations must be
// safe for concurrent use.
type Store interface {
	// AddToCart increases the quantity of sweetID by quantity as one step,
	// refusing with ErrCartLimit when the new total would exceed limit. It
	// returns the line's quantity after the call.
	AddToCart(ctx context.Context, userID string, sweetID uint, quantity, limit int) (int, error)
	// RemoveFromCart drops sweetID from the cart entirely.
	RemoveFromCart(ctx context.Context, userID string, sweetID uint) error
	// ToggleWishlist adds or removes sweetID and reports whether it is now present.
	ToggleWishlist(ctx context.Context, userID string, sweetID uint) (bool, error)
	Snapshot(ctx context.Context, userID string) (Snapshot, error)
}

func sortSnapshot(s *Snapshot) {
	sort.Slice(s.Cart, func(i, j int) bool { return s.Cart[i].SweetID < s.Cart[j].SweetID })
	sort.Slice(s.Wishlist, func(i, j int) bool { return s.Wishlist[i] < s.Wishlist[j] })
}
