// Package cache holds the short-lived featured tours cache. It is passed
// into the tour service explicitly, there is no package level state.
package cache

import (
	"context"
	"fmt"
	"time"

	"ceylon_travel/internal/domain/models"
	redisapp "ceylon_travel/internal/storage/redis"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

type Entry struct {
	Value       []models.Tour `json:"value"`
	PopulatedAt time.Time     `json:"populated_at"`
}

// FeaturedCache never stores an empty value: an empty featured list may be a
// transient backend failure and must not be served for the whole TTL.
type FeaturedCache interface {
	Get(ctx context.Context) (Entry, bool)
	Set(ctx context.Context, tours []models.Tour) error
}

func New(driver string, ttl time.Duration, client *redisapp.Client) (FeaturedCache, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(ttl), nil
	case DriverRedis:
		if client == nil {
			return nil, fmt.Errorf("featured cache: redis driver needs a redis client")
		}
		return NewRedis(client, ttl), nil
	case DriverNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("featured cache: unknown driver %q", driver)
	}
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context) (Entry, bool)        { return Entry{}, false }
func (Nop) Set(context.Context, []models.Tour) error { return nil }
