package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ceylon_travel/internal/domain/models"
)

const featuredKey = "featured_tours"

type Memory struct {
	c   *gocache.Cache
	now func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		c:   gocache.New(ttl, 2*ttl),
		now: time.Now,
	}
}

func (m *Memory) Get(_ context.Context) (Entry, bool) {
	v, ok := m.c.Get(featuredKey)
	if !ok {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

func (m *Memory) Set(_ context.Context, tours []models.Tour) error {
	if len(tours) == 0 {
		return nil
	}
	m.c.SetDefault(featuredKey, Entry{Value: tours, PopulatedAt: m.now()})
	return nil
}
