package rdx

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(context.Background(), key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(context.Background(), key, value, 0).Err()
}

func RdxDel(key string) error {
	return Conn.Del(context.Background(), key).Err()
}

// RdxSetNX returns true only for the first caller to claim key. Used as the
// at-most-once guard for order notifications.
func RdxSetNX(key string, ttl time.Duration) (bool, error) {
	return Conn.SetNX(context.Background(), key, "1", ttl).Result()
}
