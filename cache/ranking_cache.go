package cache

import (
	"context"
	"encoding/json"
	"time"

	"bolao/events"
	"bolao/models"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const rankingKey = "bolao:ranking"

// RankingCache keeps a ranking snapshot in Redis with a short TTL.
// Misses and Redis failures both fall through to the database, so the
// cache is never load-bearing for correctness.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a ranking cache on the given Redis URL
func New(redisURL string, ttl time.Duration) (*RankingCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewWithClient(redis.NewClient(opts), ttl), nil
}

// NewWithClient creates a ranking cache on an existing client
func NewWithClient(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

func (c *RankingCache) Get(ctx context.Context) ([]*models.RankingEntry, bool) {
	data, err := c.client.Get(ctx, rankingKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.WithError(err).Warn("Ranking cache read failed, falling back to database")
		return nil, false
	}

	var entries []*models.RankingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.WithError(err).Warn("Ranking cache corrupted, falling back to database")
		return nil, false
	}
	return entries, true
}

func (c *RankingCache) Set(ctx context.Context, entries []*models.RankingEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		log.WithError(err).Warn("Failed to marshal ranking snapshot")
		return
	}
	if err := c.client.Set(ctx, rankingKey, data, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Ranking cache write failed")
	}
}

func (c *RankingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, rankingKey).Err(); err != nil {
		log.WithError(err).Warn("Ranking cache invalidation failed")
	}
}

// RegisterInvalidation drops the snapshot whenever a resolution or
// reopen changes the scores behind it.
func (c *RankingCache) RegisterInvalidation(bus *events.Bus) {
	handler := func(ctx context.Context, event events.Event) {
		c.Invalidate(ctx)
	}
	bus.Subscribe(events.EventTypeProvaResolved, handler)
	bus.Subscribe(events.EventTypeProvaReopened, handler)
}

// Close releases the underlying Redis connection
func (c *RankingCache) Close() error {
	return c.client.Close()
}
