package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

const defaultTrackerTTL = 5 * time.Minute

// cacheLookupsTotal counts detail cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var cacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "cache_lookups_total",
		Help:      "Total number of tracker detail cache lookups, by result.",
	},
	[]string{"result"},
)

// TrackerCache caches tracker detail documents in Redis as JSON.
// Key format: tracker:<id>
type TrackerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrackerCache creates a TrackerCache; entries expire after ttl
// (defaultTrackerTTL when ttl <= 0).
func NewTrackerCache(client *redis.Client, ttl time.Duration) *TrackerCache {
	if ttl <= 0 {
		ttl = defaultTrackerTTL
	}
	return &TrackerCache{client: client, ttl: ttl}
}

// Get returns the cached tracker, or nil without error on a miss.
func (c *TrackerCache) Get(ctx context.Context, id string) (*domain.Tracker, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		cacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tracker cache get: %w", err)
	}

	var t domain.Tracker
	if err := json.Unmarshal(raw, &t); err != nil {
		cacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tracker cache decode: %w", err)
	}
	cacheLookupsTotal.WithLabelValues("hit").Inc()
	return &t, nil
}

// Set stores t under its id until the TTL elapses.
func (c *TrackerCache) Set(ctx context.Context, t *domain.Tracker) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("tracker cache encode: %w", err)
	}
	return c.client.Set(ctx, key(t.ID), raw, c.ttl).Err()
}

func key(id string) string {
	return "tracker:" + id
}
