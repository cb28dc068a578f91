// Package session keeps per-visitor state (cart, shipping data, logged-in
// user) in Redis, keyed by a cookie-issued session ID.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rickbags/internal/cart"
	"rickbags/internal/domain"
)

const keyPrefix = "rickbags:sess:"

// Data is everything a session carries. Cart and Shipping are transient
// and cleared on checkout; UserID is set on login.
type Data struct {
	UserID   *int64               `json:"userId,omitempty"`
	Cart     cart.Cart            `json:"cart,omitempty"`
	Shipping *domain.ShippingInfo `json:"shipping,omitempty"`
}

// Store reads and writes session blobs in Redis with a rolling TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to Redis from a URL and verifies with a ping.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Load fetches the session, returning a fresh empty session when none
// exists yet.
func (s *Store) Load(ctx context.Context, sid string) (*Data, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+sid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Data{Cart: cart.New()}, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if data.Cart == nil {
		data.Cart = cart.New()
	}
	return &data, nil
}

// Save overwrites the session blob. Whole-blob writes make concurrent tabs
// last-write-wins.
func (s *Store) Save(ctx context.Context, sid string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sid, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session entirely (logout).
func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
