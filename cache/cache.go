// Package cache keeps a Redis copy of promotion and giveaway lists keyed by
// restaurant id, so public menu reads survive a transiently unreachable
// database. It is a fallback, never the source of truth: controllers write
// through on mutation and read from it only when the database read failed.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cantacomigo/zapmenu/model"
)

// Store is nil when REDIS_ADDR is not configured; callers must check.
var Store *Catalog

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, catalog cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	Store = New(client, 24*time.Hour)
	log.Println("Catalog cache configured")
}

type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Catalog {
	return &Catalog{client: client, ttl: ttl}
}

func promotionsKey(restaurantID uint) string {
	return "promotions:" + strconv.FormatUint(uint64(restaurantID), 10)
}

func giveawaysKey(restaurantID uint) string {
	return "giveaways:" + strconv.FormatUint(uint64(restaurantID), 10)
}

func (c *Catalog) SetPromotions(ctx context.Context, restaurantID uint, promotions []model.Promotion) error {
	return c.set(ctx, promotionsKey(restaurantID), promotions)
}

func (c *Catalog) GetPromotions(ctx context.Context, restaurantID uint) ([]model.Promotion, error) {
	var promotions []model.Promotion
	if err := c.get(ctx, promotionsKey(restaurantID), &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (c *Catalog) SetGiveaways(ctx context.Context, restaurantID uint, giveaways []model.Giveaway) error {
	return c.set(ctx, giveawaysKey(restaurantID), giveaways)
}

func (c *Catalog) GetGiveaways(ctx context.Context, restaurantID uint) ([]model.Giveaway, error) {
	var giveaways []model.Giveaway
	if err := c.get(ctx, giveawaysKey(restaurantID), &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}

func (c *Catalog) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *Catalog) get(ctx context.Context, key string, out interface{}) error {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}
