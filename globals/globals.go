package globals

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

var JwtSecret []byte

func init() {
	_ = godotenv.Load()
	JwtSecret = []byte(EnvOr("JWT_SECRET", "change_me_in_production"))
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RestaurantIDKey ContextKey = "restaurantId"

var Ctx = context.Background()

func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
