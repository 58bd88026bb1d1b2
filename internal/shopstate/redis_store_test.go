package shopstate

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

type fakeOps struct {
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	err    error
}

func newFakeOps() *fakeOps {
	return &fakeOps{hashes: map[string]map[string]string{}, sets: map[string]map[string]struct{}{}}
}

func (f *fakeOps) HIncrBy(_ context.Context, key, field string, delta int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	h, ok := f.hashes[key]
	if !ok {
		h = map[string]string{}
		f.hashes[key] = h
	}
	cur, _ := strconv.ParseInt(h[field], 10, 64)
	cur += delta
	h[field] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (f *fakeOps) HDel(_ context.Context, key string, fields ...string) error {
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

func (f *fakeOps) HGetAll(_ context.Context, key string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeOps) SAdd(_ context.Context, key string, members ...string) (int64, error) {
	s, ok := f.sets[key]
	if !ok {
		s = map[string]struct{}{}
		f.sets[key] = s
	}
	var added int64
	for _, m := range members {
		if _, ok := s[m]; !ok {
			s[m] = struct{}{}
			added++
		}
	}
	return added, nil
}

func (f *fakeOps) SRem(_ context.Context, key string, members ...string) (int64, error) {
	var removed int64
	for _, m := range members {
		if _, ok := f.sets[key][m]; ok {
			delete(f.sets[key], m)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeOps) SMembers(_ context.Context, key string) ([]string, error) {
	out := []string{}
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeOps) CartKey(userID string) string     { return "cart:" + userID }
func (f *fakeOps) WishlistKey(userID string) string { return "wishlist:" + userID }

func TestRedisStoreRoundTrip(t *testing.T) {
	ops := newFakeOps()
	store := &RedisStore{ops: ops}
	ctx := context.Background()

	if _, err := store.AddToCart(ctx, "u1", 6, 2, 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.AddToCart(ctx, "u1", 2, 1, 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if ops.hashes["cart:u1"]["6"] != "2" {
		t.Fatalf("expected hash field 6=2, got %v", ops.hashes["cart:u1"])
	}

	if added, err := store.ToggleWishlist(ctx, "u1", 3); err != nil || !added {
		t.Fatalf("expected add, got %v %v", added, err)
	}
	if added, err := store.ToggleWishlist(ctx, "u1", 5); err != nil || !added {
		t.Fatalf("expected add, got %v %v", added, err)
	}
	if added, err := store.ToggleWishlist(ctx, "u1", 3); err != nil || added {
		t.Fatalf("expected removal, got %v %v", added, err)
	}

	snap, err := store.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Cart) != 2 || snap.Cart[0].SweetID != 2 || snap.Cart[1].SweetID != 6 {
		t.Fatalf("expected cart sorted by id, got %+v", snap.Cart)
	}
	if len(snap.Wishlist) != 1 || snap.Wishlist[0] != 5 {
		t.Fatalf("expected wishlist [5], got %v", snap.Wishlist)
	}

	if err := store.RemoveFromCart(ctx, "u1", 6); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := ops.hashes["cart:u1"]["6"]; ok {
		t.Fatal("expected field removed from hash")
	}
}

func TestRedisStoreDropsNonPositiveQuantities(t *testing.T) {
	ops := newFakeOps()
	store := &RedisStore{ops: ops}
	ctx := context.Background()

	_, _ = store.AddToCart(ctx, "u1", 1, 1, 10)
	_, _ = store.AddToCart(ctx, "u1", 1, -1, 10)
	if _, ok := ops.hashes["cart:u1"]["1"]; ok {
		t.Fatal("expected zero quantity field to be deleted")
	}

	ops.hashes["cart:u1"]["bogus"] = "3"
	snap, err := store.Snapshot(ctx, "u1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Cart) != 0 {
		t.Fatalf("expected malformed fields to be skipped, got %+v", snap.Cart)
	}
}

func TestRedisStoreUndoesAddPastLimit(t *testing.T) {
	ops := newFakeOps()
	store := &RedisStore{ops: ops}
	ctx := context.Background()

	total, err := store.AddToCart(ctx, "u1", 3, 4, 5)
	if err != nil || total != 4 {
		t.Fatalf("expected 4 in cart, got %d err=%v", total, err)
	}
	total, err = store.AddToCart(ctx, "u1", 3, 2, 5)
	if !errors.Is(err, ErrCartLimit) {
		t.Fatalf("expected cart limit error, got %v", err)
	}
	if total != 4 {
		t.Fatalf("expected quantity 4 reported, got %d", total)
	}
	if ops.hashes["cart:u1"]["3"] != "4" {
		t.Fatalf("expected increment undone, got %v", ops.hashes["cart:u1"])
	}
}

func TestRedisStoreWrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	ops := newFakeOps()
	ops.err = boom
	store := &RedisStore{ops: ops}

	if _, err := store.AddToCart(context.Background(), "u1", 1, 1, 10); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if _, err := store.Snapshot(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	if _, err := NewRedisStore(nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}
