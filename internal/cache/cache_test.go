package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylon_travel/internal/domain/models"
	redisapp "ceylon_travel/internal/storage/redis"
)

var testCtx = context.Background()

func featured() []models.Tour {
	return []models.Tour{{ID: "t1", Name: "Hill Country", Featured: true}}
}

func TestMemory(t *testing.T) {
	m := NewMemory(time.Minute)

	_, ok := m.Get(testCtx)
	assert.False(t, ok)

	require.NoError(t, m.Set(testCtx, nil))
	_, ok = m.Get(testCtx)
	assert.False(t, ok, "empty results are never cached")

	require.NoError(t, m.Set(testCtx, featured()))
	e, ok := m.Get(testCtx)
	require.True(t, ok)
	assert.Equal(t, featured(), e.Value)
	assert.False(t, e.PopulatedAt.IsZero())
}

func TestMemory_Expires(t *testing.T) {
	m := NewMemory(20 * time.Millisecond)
	require.NoError(t, m.Set(testCtx, featured()))

	time.Sleep(50 * time.Millisecond)

	_, ok := m.Get(testCtx)
	assert.False(t, ok)
}

func setupRedis() (*Redis, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	r := NewRedis(redisapp.Wrap(db), 5*time.Minute)
	r.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return r, mock
}

func TestRedis_Set(t *testing.T) {
	r, mock := setupRedis()

	data, err := json.Marshal(Entry{Value: featured(), PopulatedAt: r.now()})
	require.NoError(t, err)

	t.Run("stores entry with ttl", func(t *testing.T) {
		mock.ExpectSet(redisFeaturedKey, data, 5*time.Minute).SetVal("OK")
		require.NoError(t, r.Set(testCtx, featured()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty value is not stored", func(t *testing.T) {
		require.NoError(t, r.Set(testCtx, []models.Tour{}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSet(redisFeaturedKey, data, 5*time.Minute).SetErr(redis.ErrClosed)
		assert.Error(t, r.Set(testCtx, featured()))
	})
}

func TestRedis_Get(t *testing.T) {
	r, mock := setupRedis()

	data, err := json.Marshal(Entry{Value: featured(), PopulatedAt: r.now()})
	require.NoError(t, err)

	mock.ExpectGet(redisFeaturedKey).SetVal(string(data))
	e, ok := r.Get(testCtx)
	require.True(t, ok)
	assert.Equal(t, "Hill Country", e.Value[0].Name)
	assert.True(t, e.PopulatedAt.Equal(r.now()))

	mock.ExpectGet(redisFeaturedKey).RedisNil()
	_, ok = r.Get(testCtx)
	assert.False(t, ok)

	mock.ExpectGet(redisFeaturedKey).SetErr(redis.ErrClosed)
	_, ok = r.Get(testCtx)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew(t *testing.T) {
	c, err := New(DriverMemory, time.Minute, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	_, err = New(DriverRedis, time.Minute, nil)
	assert.Error(t, err)

	c, err = New(DriverNone, time.Minute, nil)
	require.NoError(t, err)
	_, ok := c.Get(testCtx)
	assert.False(t, ok)

	_, err = New("memcached", time.Minute, nil)
	assert.Error(t, err)
}
