package shopstate

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryStoreCartAndWishlist(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.AddToCart(ctx, "u1", 4, 2, 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.AddToCart(ctx, "u1", 1, 1, 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.AddToCart(ctx, "u1", 4, 3, 10); err != nil {
		t.Fatalf("add: %v", err)
	}

	added, err := store.ToggleWishlist(ctx, "u1", 9)
	if err != nil || !added {
		t.Fatalf("expected wishlist add, added=%v err=%v", added, err)
	}

	snap, err := store.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Cart) != 2 || snap.Cart[0].SweetID != 1 || snap.Cart[1].Quantity != 5 {
		t.Fatalf("unexpected cart %+v", snap.Cart)
	}
	if snap.CartCount() != 6 {
		t.Fatalf("expected cart count 6, got %d", snap.CartCount())
	}
	if !snap.Wishlisted(9) {
		t.Fatalf("expected 9 on wishlist, got %v", snap.Wishlist)
	}

	if err := store.RemoveFromCart(ctx, "u1", 4); err != nil {
		t.Fatalf("remove: %v", err)
	}
	added, err = store.ToggleWishlist(ctx, "u1", 9)
	if err != nil || added {
		t.Fatalf("expected wishlist removal, added=%v err=%v", added, err)
	}

	snap, _ = store.Snapshot(ctx, "u1")
	if snap.Quantity(4) != 0 || snap.Wishlisted(9) {
		t.Fatalf("expected item and wishlist entry removed, got %+v", snap)
	}

	other, _ := store.Snapshot(ctx, "u2")
	if len(other.Cart) != 0 || len(other.Wishlist) != 0 {
		t.Fatalf("expected empty state for another user, got %+v", other)
	}
}

func TestMemoryStoreConcurrentAdds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.AddToCart(ctx, "u1", 7, 1, 100)
		}()
	}
	wg.Wait()

	snap, _ := store.Snapshot(ctx, "u1")
	if snap.Quantity(7) != 50 {
		t.Fatalf("expected 50 units, got %d", snap.Quantity(7))
	}
}

func TestMemoryStoreConcurrentAddsStopAtLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		refused int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddToCart(ctx, "u1", 7, 1, 20)
			if errors.Is(err, ErrCartLimit) {
				mu.Lock()
				refused++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	snap, _ := store.Snapshot(ctx, "u1")
	if snap.Quantity(7) != 20 {
		t.Fatalf("expected 20 units, got %d", snap.Quantity(7))
	}
	if refused != 30 {
		t.Fatalf("expected 30 refused adds, got %d", refused)
	}
}
