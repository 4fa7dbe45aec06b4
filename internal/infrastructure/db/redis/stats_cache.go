package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetclinic/clinic-system/internal/api/metrics"
	"github.com/vetclinic/clinic-system/internal/core/domain"
)

const (
	statsKey = "clinic:stats"
	statsTTL = 30 * time.Second
)

// StatsCache is a short-TTL cache in front of the clinic statistics
// aggregation. A miss or any Redis failure falls through to a recompute.
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached stats, or (nil, nil) on a miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.ClinicStats, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.ClinicStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, err
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, nil
}

// Set stores the stats snapshot with a short expiry.
func (c *StatsCache) Set(ctx context.Context, stats *domain.ClinicStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, raw, statsTTL).Err()
}
