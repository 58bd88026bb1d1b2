package shopstate

import (
	"context"
	"sync"
)

// MemoryStore keeps shopper state in process. Used when Redis is disabled.
type MemoryStore struct {
	mu        sync.Mutex
	carts     map[string]map[uint]int
	wishlists map[string]map[uint]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     map[string]map[uint]int{},
		wishlists: map[string]map[uint]struct{}{},
	}
}

func (m *MemoryStore) AddToCart(_ context.Context, userID string, sweetID uint, quantity, limit int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		cart = map[uint]int{}
		m.carts[userID] = cart
	}
	total := cart[sweetID] + quantity
	if total > limit {
		return cart[sweetID], ErrCartLimit
	}
	if total <= 0 {
		delete(cart, sweetID)
		return 0, nil
	}
	cart[sweetID] = total
	return total, nil
}

func (m *MemoryStore) RemoveFromCart(_ context.Context, userID string, sweetID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts[userID], sweetID)
	return nil
}

func (m *MemoryStore) ToggleWishlist(_ context.Context, userID string, sweetID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.wishlists[userID]
	if !ok {
		list = map[uint]struct{}{}
		m.wishlists[userID] = list
	}
	if _, present := list[sweetID]; present {
		delete(list, sweetID)
		return false, nil
	}
	list[sweetID] = struct{}{}
	return true, nil
}

func (m *MemoryStore) Snapshot(_ context.Context, userID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{Cart: []CartLine{}, Wishlist: []uint{}}
	for id, qty := range m.carts[userID] {
		snap.Cart = append(snap.Cart, CartLine{SweetID: id, Quantity: qty})
	}
	for id := range m.wishlists[userID] {
		snap.Wishlist = append(snap.Wishlist, id)
	}
	sortSnapshot(&snap)
	return snap, nil
}
