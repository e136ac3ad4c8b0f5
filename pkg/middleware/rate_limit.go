package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

type RateLimitConfig struct {
	// RequestsPerPeriod is the number of requests allowed per Period.
	RequestsPerPeriod int
	// Period defaults to one second.
	Period time.Duration
	// Store defaults to an in-memory store.
	Store limiter.Store
}

// NewMemoryStore returns a per-process rate limit store.
func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// NewRedisStore returns a rate limit store shared across instances.
func NewRedisStore(redisURL string) (limiter.Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return sredis.NewStoreWithOptions(redis.NewClient(opt), limiter.StoreOptions{
		Prefix: "teamtrack:ratelimit",
	})
}

// RateLimit rejects clients exceeding the configured rate with 429 responses.
func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}

	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})
	mw := stdlib.NewMiddleware(instance)

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
