package middlewares

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redisclient "github.com/stayvista/stayvista/config/redis"
	"github.com/stayvista/stayvista/utils"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// limiterKey identifies the caller for rate limiting: the authenticated user
// when available, otherwise the client IP.
func limiterKey(c *gin.Context) string {
	if user, err := utils.GetAuthUser(c); err == nil {
		return user.ID.String()
	}
	return c.ClientIP()
}

func createRedisStore(routeID string, period time.Duration) (limiter.Store, error) {
	rdb, err := redisclient.GetRedisClient(context.Background())
	if err != nil {
		return nil, err
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: period,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
	}
	return store, nil
}

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if durationStr == "" {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", rateStr)
	}
	unit := durationStr[len(durationStr)-1:]
	count, err := strconv.Atoi(strings.TrimSuffix(durationStr, unit))
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid duration: %s", durationStr)
	}

	var period time.Duration
	switch unit {
	case "s":
		period = time.Duration(count) * time.Second
	case "m":
		period = time.Duration(count) * time.Minute
	case "h":
		period = time.Duration(count) * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter creates middleware with custom periods like "10-2m" for a
// specific route, keyed per caller. Falls back to a pass-through middleware
// when Redis is unavailable so rate limiting never takes the API down.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		log.Printf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	store, err := createRedisStore(routeID, rate.Period)
	if err != nil {
		log.Printf("Error creating Redis store for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiterInstance := limiter.New(store, rate)

	return ginmiddleware.NewMiddleware(limiterInstance, ginmiddleware.WithKeyGetter(limiterKey))
}
