package models

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// CatalogChannel carries JSON change events published after every admin
// catalog write. Storefront processes resubscribe and reload the full
// snapshot on each event; redundant events are harmless because reloads
// are idempotent full replacements.
const CatalogChannel = "cake_shop:catalog_events"

// SectionOrderKey holds a JSON array of section keys, used as the ordering
// fallback when section_meta has no sort_order column.
const SectionOrderKey = "cake_shop:section_order"

func InitRedis() {
	redisURL := os.Getenv("REDIS_URL")

	var opt *redis.Options
	if redisURL != "" {
		parsedOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Println("Failed to parse Redis URL:", err)
			log.Println("Running without cache")
			return
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		}
	}

	RedisClient = redis.NewClient(opt)

	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		log.Println("Redis connection failed:", err)
		log.Println("Running without cache")
		RedisClient = nil
		return
	}

	log.Println("Redis connected")
}

// PublishCatalogEvent notifies subscribers that part of the catalog
// changed. Best effort: without Redis there is no change feed.
func PublishCatalogEvent(payload string) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Publish(context.Background(), CatalogChannel, payload).Err(); err != nil {
		log.Println("Failed to publish catalog event:", err)
	}
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
