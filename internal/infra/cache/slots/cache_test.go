package slots

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(key)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(key, value, expiration)
	return redis.NewStatusResult("OK", args.Error(0))
}

func (m *mockRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	args := m.Called(key)
	return redis.NewIntResult(1, args.Error(0))
}

func (m *mockRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(key, expiration)
	return redis.NewBoolResult(true, args.Error(0))
}

// memRedis хранит строки в map, TTL не учитывается
type memRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemRedis() *memRedis {
	return &memRedis{data: make(map[string]string)}
}

func (m *memRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (m *memRedis) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestRedisCache_Keys(t *testing.T) {
	c := NewRedisCache(nil, time.Minute)
	assert.Equal(t, "slots:200:2025-06-01:3", c.Key(200, testDate, 3))
	assert.Equal(t, "slots:200:2025-06-01:version", c.VersionKey(200, testDate))
}

func TestRedisCache_GetHit(t *testing.T) {
	client := new(mockRedis)
	client.On("Get", "slots:200:2025-06-01:version").Return("4", nil)
	client.On("Get", "slots:200:2025-06-01:4").Return(`["10:00","12:00"]`, nil)

	c := NewRedisCache(client, time.Minute)
	snap, err := c.Get(context.Background(), 200, testDate)

	require.NoError(t, err)
	assert.True(t, snap.Found)
	assert.Equal(t, int64(4), snap.Version)
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, snap.Slots)
}

func TestRedisCache_GetMissWithoutVersion(t *testing.T) {
	client := new(mockRedis)
	client.On("Get", "slots:200:2025-06-01:version").Return("", redis.Nil)
	client.On("Get", "slots:200:2025-06-01:0").Return("", redis.Nil)

	c := NewRedisCache(client, time.Minute)
	snap, err := c.Get(context.Background(), 200, testDate)

	require.NoError(t, err)
	assert.False(t, snap.Found)
	assert.Zero(t, snap.Version)
	assert.Nil(t, snap.Slots)
}

func TestRedisCache_GetError(t *testing.T) {
	client := new(mockRedis)
	client.On("Get", mock.Anything).Return("", errors.New("i/o timeout"))

	c := NewRedisCache(client, time.Minute)
	_, err := c.Get(context.Background(), 200, testDate)

	assert.ErrorIs(t, err, ErrCache)
}

func TestRedisCache_SetAndInvalidate(t *testing.T) {
	client := new(mockRedis)
	client.On("Set", "slots:200:2025-06-01:2", []byte(`["10:00"]`), 30*time.Second).Return(nil)
	client.On("Incr", "slots:200:2025-06-01:version").Return(nil)
	client.On("Expire", "slots:200:2025-06-01:version", time.Minute).Return(nil)

	c := NewRedisCache(client, 30*time.Second)

	require.NoError(t, c.Set(context.Background(), 200, testDate, 2, []types.TimeString{"10:00"}))
	require.NoError(t, c.Invalidate(context.Background(), 200, testDate))
	client.AssertExpectations(t)
}

func TestRedisCache_InvalidateError(t *testing.T) {
	client := new(mockRedis)
	client.On("Incr", mock.Anything).Return(errors.New("connection refused"))

	c := NewRedisCache(client, time.Minute)
	assert.ErrorIs(t, c.Invalidate(context.Background(), 200, testDate), ErrCache)
}

func TestRedisCache_SetAfterInvalidateIsNotVisible(t *testing.T) {
	ctx := context.Background()
	c := NewRedisCache(newMemRedis(), time.Minute)

	// читатель получил промах и версию, затем прочитал хранилище
	snap, err := c.Get(ctx, 200, testDate)
	require.NoError(t, err)
	require.False(t, snap.Found)

	// бронирование изменилось до того, как читатель записал снимок
	require.NoError(t, c.Invalidate(ctx, 200, testDate))
	require.NoError(t, c.Set(ctx, 200, testDate, snap.Version, []types.TimeString{"11:00"}))

	next, err := c.Get(ctx, 200, testDate)
	require.NoError(t, err)
	assert.False(t, next.Found)
	assert.Equal(t, snap.Version+1, next.Version)

	// снимок под актуальной версией читается
	require.NoError(t, c.Set(ctx, 200, testDate, next.Version, []types.TimeString{"10:00", "11:00"}))
	hit, err := c.Get(ctx, 200, testDate)
	require.NoError(t, err)
	assert.True(t, hit.Found)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, hit.Slots)
}

func TestNopCache(t *testing.T) {
	var c NopCache

	snap, err := c.Get(context.Background(), 1, testDate)
	assert.NoError(t, err)
	assert.False(t, snap.Found)
	assert.NoError(t, c.Set(context.Background(), 1, testDate, 0, nil))
	assert.NoError(t, c.Invalidate(context.Background(), 1, testDate))
}
