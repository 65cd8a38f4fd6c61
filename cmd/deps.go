package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"flowerStore/config"
	"flowerStore/repository"

	"github.com/redis/go-redis/v9"
)

// stores holds the open connections a command needs. Close releases
// whatever was opened.
type stores struct {
	db     *sql.DB
	rdb    *redis.Client
	sqlite *sql.DB
}

func (s *stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.sqlite != nil {
		s.sqlite.Close()
	}
}

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := repository.OpenPostgres(ctx, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	log.Printf("db connected")
	return db, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cncl := context.WithTimeout(ctx, 5*time.Second)
	defer cncl()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis is not working: %w", err)
	}
	log.Printf("redis connected")
	return rdb, nil
}

func newBreaker(cfg *config.Config) *repository.StoreBreaker {
	return repository.NewStoreBreaker(repository.BreakerSettings{
		Name:             "postgres",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
	})
}

// newSlotRepository picks the cart/wishlist slot backend.
func newSlotRepository(ctx context.Context, cfg *config.Config, s *stores) (repository.CartRepository, error) {
	switch cfg.Slots.Backend {
	case "sqlite":
		conn, err := repository.OpenSqlite(cfg.Slots.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open slot store: %w", err)
		}
		s.sqlite = conn
		return repository.NewCartSqliteRepository(ctx, conn)
	default:
		return repository.NewCartRepository(ctx, s.rdb, cfg.Slots.TTL)
	}
}
