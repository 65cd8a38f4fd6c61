package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"flowerStore/entities"
	"flowerStore/models"

	_ "github.com/mattn/go-sqlite3"
)

const slotsSchema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// CartSqliteRepo is the single-node alternative to the redis slot store,
// for deployments that keep carts on local disk.
type CartSqliteRepo struct {
	db *sql.DB
}

func OpenSqlite(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
}

func NewCartSqliteRepository(ctx context.Context, conn *sql.DB) (CartRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if err := conn.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, slotsSchema); err != nil {
		return nil, err
	}
	return &CartSqliteRepo{db: conn}, nil
}

func (c *CartSqliteRepo) GetCart(ctx context.Context, cartSessionId string) (cart entities.Cart, err error) {
	cart = entities.Cart{}
	err = c.load(ctx, slotKey(cartSessionId, CartSlot), &cart)
	if cart == nil {
		cart = entities.Cart{}
	}
	return
}

func (c *CartSqliteRepo) SetCart(ctx context.Context, cartSessionId string, cart entities.Cart) (err error) {
	if cart == nil {
		cart = entities.Cart{}
	}
	return c.save(ctx, slotKey(cartSessionId, CartSlot), cart)
}

func (c *CartSqliteRepo) GetWishlist(ctx context.Context, cartSessionId string) (wishlist entities.Wishlist, err error) {
	wishlist = entities.Wishlist{}
	err = c.load(ctx, slotKey(cartSessionId, WishlistSlot), &wishlist)
	if wishlist == nil {
		wishlist = entities.Wishlist{}
	}
	return
}

func (c *CartSqliteRepo) SetWishlist(ctx context.Context, cartSessionId string, wishlist entities.Wishlist) (err error) {
	if wishlist == nil {
		wishlist = entities.Wishlist{}
	}
	return c.save(ctx, slotKey(cartSessionId, WishlistSlot), wishlist)
}

func (c *CartSqliteRepo) load(ctx context.Context, key string, dst any) (err error) {
	var val string
	e := c.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&val)
	if e != nil {
		if errors.Is(e, sql.ErrNoRows) {
			return
		}
		log.Printf("CartSqliteRepo.load[1]: %v", e)
		err = models.ErrServerError
		return
	}
	decodeSlot(key, []byte(val), dst)
	return
}

func (c *CartSqliteRepo) save(ctx context.Context, key string, src any) (err error) {
	jsonData, e := json.Marshal(src)
	if e != nil {
		log.Printf("CartSqliteRepo.save[1]: %v", e)
		err = models.ErrServerError
		return
	}
	_, e = c.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(jsonData))
	if e != nil {
		log.Printf("CartSqliteRepo.save[2]: %v", e)
		err = models.ErrServerError
	}
	return
}
