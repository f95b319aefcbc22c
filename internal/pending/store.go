package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
	"github.com/redis/go-redis/v9"
)

// pending order per user: pending_order:{user_id} -> JSON
const keyPendingOrder = "pending_order:%s"

// TTL bounds how long an unpaid order survives; navigating away from the
// payment page leaves the entry to expire on its own.
var TTL = 30 * time.Minute

// Order is an order held between submission and payment confirmation,
// not yet visible to anyone but its owner.
type Order struct {
	ID       string  `json:"id"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Store keeps pending orders in redis, one per user
type Store struct {
	rdb *redis.Client
}

// New creates redis client for the pending order store
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// NewStore creates new Store instance
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Put stores the user's pending order, replacing any previous one
func (s *Store) Put(ctx context.Context, userID string, order Order) error {
	val, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(userID), val, TTL).Err()
}

// Get returns the user's pending order
func (s *Store) Get(ctx context.Context, userID string) (*Order, error) {
	val, err := s.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrNoPendingOrder
		}
		return nil, err
	}

	order := Order{}
	if err := json.Unmarshal(val, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// Clear removes the user's pending order
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}

func key(userID string) string {
	return fmt.Sprintf(keyPendingOrder, userID)
}
