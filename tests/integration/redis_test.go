//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerapp "github.com/vendorhub/backend/internal/application/ledger"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
)

func TestRedisOrderSequence(t *testing.T) {
	client := NewTestRedis(t)
	ctx := context.Background()
	seq := cache.NewRedisOrderSequence(client, "")

	n, err := seq.Seed(ctx, 41)
	require.NoError(t, err)
	assert.Equal(t, int64(41), n)

	n, err = seq.Seed(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(41), n, "seeding never lowers the counter")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx)
			assert.NoError(t, err)
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 20)
	for v := int64(42); v <= 61; v++ {
		assert.True(t, seen[v], "missing %d", v)
	}
}

func TestRedisOrderSequence_DrivesCheckout(t *testing.T) {
	client := NewTestRedis(t)
	ctx := context.Background()
	seq := cache.NewRedisOrderSequence(client, "vendorhub:test:orders")
	_, err := seq.Seed(ctx, 99)
	require.NoError(t, err)

	m := newMarketplace(t, persistence.WithOrderSequence(seq))
	vendor := m.signup(t, "shop", "vendor")

	orders, err := m.ledger.CreateOrders(ctx, vendor, ledgerapp.CreateOrdersRequest{
		Items: []ledgerapp.LineItemRequest{{Name: "Bolt", Price: decPtr("1"), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD100", orders[0].OrderNumber)
}

func TestRedisTokenBlacklist(t *testing.T) {
	client := NewTestRedis(t)
	ctx := context.Background()
	blacklist := auth.NewRedisTokenBlacklist(client)

	listed, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))
	listed, err = blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, listed)

	ttl, err := client.TTL(ctx, "token:blacklist:jti:jti-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
