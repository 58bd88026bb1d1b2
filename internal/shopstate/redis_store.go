package shopstate

import (
	"context"
	"fmt"
	"strconv"

	redisclient "github.com/angelmondragon/sweetshop-backend/pkg/redis"
)

type redisOps interface {
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	HDel(ctx context.Context, key string, fields ...string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SRem(ctx context.Context, key string, members ...string) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	CartKey(userID string) string
	WishlistKey(userID string) string
}

// RedisStore keeps carts in a hash (sweet id -> quantity) and wishlists in
// a set, one key each per shopper.
type RedisStore struct {
	ops redisOps
}

func NewRedisStore(client *redisclient.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisStore{ops: client}, nil
}

// AddToCart relies on HINCRBY being atomic: every concurrent add sees its
// own total, and the ones that land past limit are undone.
func (s *RedisStore) AddToCart(ctx context.Context, userID string, sweetID uint, quantity, limit int) (int, error) {
	key := s.ops.CartKey(userID)
	field := formatID(sweetID)
	total, err := s.ops.HIncrBy(ctx, key, field, int64(quantity))
	if err != nil {
		return 0, fmt.Errorf("increment cart: %w", err)
	}
	if total > int64(limit) {
		prev, err := s.ops.HIncrBy(ctx, key, field, -int64(quantity))
		if err != nil {
			return 0, fmt.Errorf("undo cart increment: %w", err)
		}
		return int(prev), ErrCartLimit
	}
	if total <= 0 {
		if err := s.ops.HDel(ctx, key, field); err != nil {
			return 0, fmt.Errorf("trim cart: %w", err)
		}
		return 0, nil
	}
	return int(total), nil
}

func (s *RedisStore) RemoveFromCart(ctx context.Context, userID string, sweetID uint) error {
	if err := s.ops.HDel(ctx, s.ops.CartKey(userID), formatID(sweetID)); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

func (s *RedisStore) ToggleWishlist(ctx context.Context, userID string, sweetID uint) (bool, error) {
	key := s.ops.WishlistKey(userID)
	member := formatID(sweetID)
	removed, err := s.ops.SRem(ctx, key, member)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	if removed > 0 {
		return false, nil
	}
	if _, err := s.ops.SAdd(ctx, key, member); err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	return true, nil
}

func (s *RedisStore) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	snap := Snapshot{Cart: []CartLine{}, Wishlist: []uint{}}

	cart, err := s.ops.HGetAll(ctx, s.ops.CartKey(userID))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load cart: %w", err)
	}
	for field, raw := range cart {
		id, err := parseID(field)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			continue
		}
		snap.Cart = append(snap.Cart, CartLine{SweetID: id, Quantity: qty})
	}

	members, err := s.ops.SMembers(ctx, s.ops.WishlistKey(userID))
	if err != nil {
		return Snapshot{}, fmt.Errorf("load wishlist: %w", err)
	}
	for _, member := range members {
		id, err := parseID(member)
		if err != nil {
			continue
		}
		snap.Wishlist = append(snap.Wishlist, id)
	}

	sortSnapshot(&snap)
	return snap, nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
