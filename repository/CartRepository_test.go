package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flowerStore/entities"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRose = entities.Product{Id: "p1", Name: "Eternal Crimson Box", Price: 8500, Category: entities.CategoryBouquet}

func setupTestRedis(t *testing.T, ttl time.Duration) (CartRepository, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo, err := NewCartRepository(context.Background(), client, ttl)
	require.NoError(t, err)

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return repo, mr, cleanup
}

func setupTestSqlite(t *testing.T) CartRepository {
	db, err := OpenSqlite(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewCartSqliteRepository(context.Background(), db)
	require.NoError(t, err)
	return repo
}

func TestNewCartRepository_NilConn(t *testing.T) {
	_, err := NewCartRepository(context.Background(), nil, 0)
	assert.Error(t, err)
}

func TestCartRepo_MissingSlotIsEmpty(t *testing.T) {
	repo, _, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	cart, err := repo.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Empty(t, cart)

	wl, err := repo.GetWishlist(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, wl)
	assert.Empty(t, wl)
}

func TestCartRepo_RoundTrip(t *testing.T) {
	repo, _, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	ctx := context.Background()

	cart := entities.Cart{}.Add(testRose).Add(testRose)
	require.NoError(t, repo.SetCart(ctx, "s1", cart))

	got, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart, got)

	wl := entities.Wishlist{testRose}
	require.NoError(t, repo.SetWishlist(ctx, "s1", wl))

	gotWl, err := repo.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, wl, gotWl)
}

func TestCartRepo_SlotsAreIndependent(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetCart(ctx, "s1", entities.Cart{}.Add(testRose)))

	assert.True(t, mr.Exists("slot:s1:cart"))
	assert.False(t, mr.Exists("slot:s1:wishlist"))

	other, err := repo.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCartRepo_MalformedSlotIsEmpty(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, mr.Set("slot:s1:cart", "{not json"))
	require.NoError(t, mr.Set("slot:s1:wishlist", `{"id":"p1"}`))

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	wl, err := repo.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, wl)
}

func TestCartRepo_InvariantBreakingSlotIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		slot string
		data string
	}{
		{"zero quantity", "slot:s1:cart", `[{"id":"p1","price":8500,"quantity":0}]`},
		{"negative quantity", "slot:s1:cart", `[{"id":"p1","price":8500,"quantity":-2}]`},
		{"duplicate line", "slot:s1:cart", `[{"id":"p1","price":8500,"quantity":1},{"id":"p1","price":8500,"quantity":1}]`},
		{"line without id", "slot:s1:cart", `[{"price":8500,"quantity":1}]`},
		{"duplicate wishlist entry", "slot:s1:wishlist", `[{"id":"p1"},{"id":"p1"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mr, cleanup := setupTestRedis(t, 0)
			defer cleanup()
			ctx := context.Background()
			require.NoError(t, mr.Set(tt.slot, tt.data))

			cart, err := repo.GetCart(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, cart)
			wl, err := repo.GetWishlist(ctx, "s1")
			require.NoError(t, err)
			assert.Empty(t, wl)
		})
	}
}

func TestCartRepo_SlotKeys(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetCart(ctx, "s1", entities.Cart{}.Add(testRose)))
	require.NoError(t, repo.SetWishlist(ctx, "s1", entities.Wishlist{testRose}))

	assert.True(t, mr.Exists("slot:s1:cart"))
	assert.True(t, mr.Exists("slot:s1:wishlist"))
}

func TestCartRepo_NullSlotIsEmpty(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	require.NoError(t, mr.Set("slot:s1:cart", "null"))

	cart, err := repo.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Empty(t, cart)
}

func TestCartRepo_TTL(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, time.Hour)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SetCart(ctx, "s1", entities.Cart{}.Add(testRose)))
	assert.Equal(t, time.Hour, mr.TTL("slot:s1:cart"))

	mr.FastForward(2 * time.Hour)

	cart, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartRepo_BackendDown(t *testing.T) {
	repo, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	mr.Close()

	_, err := repo.GetCart(context.Background(), "s1")
	assert.Error(t, err)
}

func TestCartSqliteRepo_RoundTrip(t *testing.T) {
	repo := setupTestSqlite(t)
	ctx := context.Background()

	empty, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	cart := entities.Cart{}.Add(testRose)
	require.NoError(t, repo.SetCart(ctx, "s1", cart))
	cart = cart.Add(testRose)
	require.NoError(t, repo.SetCart(ctx, "s1", cart))

	got, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)

	require.NoError(t, repo.SetWishlist(ctx, "s1", entities.Wishlist{testRose}))
	wl, err := repo.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entities.Wishlist{testRose}, wl)
}

func TestCartSqliteRepo_MalformedSlotIsEmpty(t *testing.T) {
	db, err := OpenSqlite(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	defer db.Close()
	repo, err := NewCartSqliteRepository(context.Background(), db)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO slots (key, value) VALUES (?, ?)", "slot:s1:cart", "[{broken")
	require.NoError(t, err)

	cart, err := repo.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, cart)
}
