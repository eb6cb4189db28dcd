package cart

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	ordermodel "rapid-pay-api/internal/model/order"
	rediskey "rapid-pay-api/internal/types/redis-key"
)

// ItemSource lists an order's line items.
type ItemSource interface {
	Items(ctx context.Context, orderID uint64) ([]ordermodel.HostOrderItem, error)
}

// RedisCart keeps carts as hashes (sku -> qty) and stock as per-sku counters.
type RedisCart struct {
	rdb   *redis.Client
	items ItemSource
}

func NewRedisCart(rdb *redis.Client, items ItemSource) *RedisCart {
	return &RedisCart{rdb: rdb, items: items}
}

func (c *RedisCart) EmptyCart(ctx context.Context, cartID string) error {
	if err := c.rdb.Del(ctx, rediskey.CartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("empty cart %s failed: %w", cartID, err)
	}
	return nil
}

// ReduceStock decrements each item's stock counter in one pipeline. SKUs with
// no counter are untracked and left alone.
func (c *RedisCart) ReduceStock(ctx context.Context, orderID uint64) error {
	items, err := c.items.Items(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load items for order %d failed: %w", orderID, err)
	}
	if len(items) == 0 {
		return nil
	}

	tracked := make([]ordermodel.HostOrderItem, 0, len(items))
	for _, it := range items {
		n, err := c.rdb.Exists(ctx, rediskey.StockKey(it.SKU)).Result()
		if err != nil {
			return fmt.Errorf("check stock %s failed: %w", it.SKU, err)
		}
		if n > 0 {
			tracked = append(tracked, it)
		}
	}
	if len(tracked) == 0 {
		return nil
	}

	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, it := range tracked {
			pipe.DecrBy(ctx, rediskey.StockKey(it.SKU), it.Qty)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reduce stock for order %d failed: %w", orderID, err)
	}
	return nil
}

// AddItem puts qty of sku into a cart.
func (c *RedisCart) AddItem(ctx context.Context, cartID, sku string, qty int64) error {
	return c.rdb.HIncrBy(ctx, rediskey.CartKey(cartID), sku, qty).Err()
}

func (c *RedisCart) SetStock(ctx context.Context, sku string, qty int64) error {
	return c.rdb.Set(ctx, rediskey.StockKey(sku), qty, 0).Err()
}

func (c *RedisCart) Stock(ctx context.Context, sku string) (int64, error) {
	return c.rdb.Get(ctx, rediskey.StockKey(sku)).Int64()
}
