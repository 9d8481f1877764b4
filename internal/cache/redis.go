package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ceylon_travel/internal/domain/models"
	redisapp "ceylon_travel/internal/storage/redis"
)

const redisFeaturedKey = "ceylon:featured_tours"

// Redis shares the featured cache between instances.
type Redis struct {
	client *redisapp.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedis(client *redisapp.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, now: time.Now}
}

// Get treats every redis error as a miss; the caller then reads the backend.
func (r *Redis) Get(ctx context.Context) (Entry, bool) {
	data, err := r.client.Get(ctx, redisFeaturedKey).Bytes()
	if err != nil {
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil || len(e.Value) == 0 {
		return Entry{}, false
	}
	return e, true
}

func (r *Redis) Set(ctx context.Context, tours []models.Tour) error {
	if len(tours) == 0 {
		return nil
	}

	data, err := json.Marshal(Entry{Value: tours, PopulatedAt: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("featured cache: %w", err)
	}
	if err := r.client.Set(ctx, redisFeaturedKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("featured cache: %w", err)
	}
	return nil
}
