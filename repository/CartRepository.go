package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"flowerStore/entities"
	"flowerStore/models"

	"github.com/redis/go-redis/v9"
)

const (
	CartSlot     = "cart"
	WishlistSlot = "wishlist"
)

// CartRepository keeps the cart and wishlist of a visitor session as two
// independent slots, each holding the whole collection as JSON.
type CartRepository interface {
	GetCart(ctx context.Context, cartSessionId string) (cart entities.Cart, err error)
	SetCart(ctx context.Context, cartSessionId string, cart entities.Cart) (err error)
	GetWishlist(ctx context.Context, cartSessionId string) (wishlist entities.Wishlist, err error)
	SetWishlist(ctx context.Context, cartSessionId string, wishlist entities.Wishlist) (err error)
}

type CartRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartRepository(ctx context.Context, redis_conn *redis.Client, ttl time.Duration) (CartRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &CartRepo{
		rdb: redis_conn,
		ttl: ttl,
	}, nil
}

// slotKey is slot:<session>:<cart|wishlist>.
func slotKey(cartSessionId, slot string) string {
	return "slot:" + cartSessionId + ":" + slot
}

func (c *CartRepo) GetCart(ctx context.Context, cartSessionId string) (cart entities.Cart, err error) {
	cart = entities.Cart{}
	err = c.load(ctx, slotKey(cartSessionId, CartSlot), &cart)
	if cart == nil {
		cart = entities.Cart{}
	}
	return
}

func (c *CartRepo) SetCart(ctx context.Context, cartSessionId string, cart entities.Cart) (err error) {
	if cart == nil {
		cart = entities.Cart{}
	}
	return c.save(ctx, slotKey(cartSessionId, CartSlot), cart)
}

func (c *CartRepo) GetWishlist(ctx context.Context, cartSessionId string) (wishlist entities.Wishlist, err error) {
	wishlist = entities.Wishlist{}
	err = c.load(ctx, slotKey(cartSessionId, WishlistSlot), &wishlist)
	if wishlist == nil {
		wishlist = entities.Wishlist{}
	}
	return
}

func (c *CartRepo) SetWishlist(ctx context.Context, cartSessionId string, wishlist entities.Wishlist) (err error) {
	if wishlist == nil {
		wishlist = entities.Wishlist{}
	}
	return c.save(ctx, slotKey(cartSessionId, WishlistSlot), wishlist)
}

func (c *CartRepo) load(ctx context.Context, key string, dst any) (err error) {
	val, e := c.rdb.Get(ctx, key).Bytes()
	if e != nil {
		if errors.Is(e, redis.Nil) {
			return
		}
		log.Printf("CartRepo.load[1]: %v", e)
		err = models.ErrServerError
		return
	}
	decodeSlot(key, val, dst)
	return
}

func (c *CartRepo) save(ctx context.Context, key string, src any) (err error) {
	jsonData, e := json.Marshal(src)
	if e != nil {
		log.Printf("CartRepo.save[1]: %v", e)
		err = models.ErrServerError
		return
	}
	err = c.rdb.Set(ctx, key, jsonData, c.ttl).Err()
	if err != nil {
		log.Printf("CartRepo.save[2]: %v", err)
		err = models.ErrServerError
	}
	return
}

// decodeSlot leaves dst at its zero collection when the stored value is not
// a JSON array of the expected shape, or when it breaks the collection's
// invariants: unique ids, and a quantity of at least 1 on cart lines.
func decodeSlot(key string, data []byte, dst any) {
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("decodeSlot: discarding malformed slot %s: %v", key, err)
		resetSlot(dst)
		return
	}
	switch v := dst.(type) {
	case *entities.Cart:
		if *v == nil {
			*v = entities.Cart{}
			return
		}
		if !validItems(*v) {
			log.Printf("decodeSlot: discarding invalid cart slot %s", key)
			*v = entities.Cart{}
		}
	case *entities.Wishlist:
		if *v == nil {
			*v = entities.Wishlist{}
			return
		}
		seen := make(map[string]bool, len(*v))
		for _, p := range *v {
			if p.Id == "" || seen[p.Id] {
				log.Printf("decodeSlot: discarding invalid wishlist slot %s", key)
				*v = entities.Wishlist{}
				return
			}
			seen[p.Id] = true
		}
	}
}

func resetSlot(dst any) {
	switch v := dst.(type) {
	case *entities.Cart:
		*v = entities.Cart{}
	case *entities.Wishlist:
		*v = entities.Wishlist{}
	}
}
