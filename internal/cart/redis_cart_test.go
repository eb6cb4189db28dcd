package cart

import (
	"context"
	"testing"

	"rapid-pay-api/internal/dal/daltest"
	ordermodel "rapid-pay-api/internal/model/order"
	rediskey "rapid-pay-api/internal/types/redis-key"
)

type staticItems []ordermodel.HostOrderItem

func (s staticItems) Items(ctx context.Context, orderID uint64) ([]ordermodel.HostOrderItem, error) {
	return s, nil
}

func TestReduceStockDecrementsTrackedSkus(t *testing.T) {
	m, rdb := daltest.OpenRedis(t)
	c := NewRedisCart(rdb, staticItems{{SKU: "tea", Qty: 2}, {SKU: "untracked", Qty: 5}})
	ctx := context.Background()

	if err := c.SetStock(ctx, "tea", 10); err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if err := c.ReduceStock(ctx, 1); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if n, err := c.Stock(ctx, "tea"); err != nil || n != 8 {
		t.Fatalf("expected 8 tea left, got %d %v", n, err)
	}
	if m.Exists(rediskey.StockKey("untracked")) {
		t.Fatal("untracked sku should not get a counter")
	}
}

func TestEmptyCartRemovesItems(t *testing.T) {
	m, rdb := daltest.OpenRedis(t)
	c := NewRedisCart(rdb, staticItems{})
	ctx := context.Background()

	if err := c.AddItem(ctx, "abc", "tea", 1); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !m.Exists(rediskey.CartKey("abc")) {
		t.Fatal("cart not created")
	}
	if err := c.EmptyCart(ctx, "abc"); err != nil {
		t.Fatalf("empty: %v", err)
	}
	if m.Exists(rediskey.CartKey("abc")) {
		t.Fatal("cart still present")
	}
}
