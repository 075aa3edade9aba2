// Package slots кэширует списки свободных слотов исполнителя на дату в Redis.
//
// Кэш вспомогательный: источник истины - хранилище бронирований. Каждая пара
// (исполнитель, дата) имеет счетчик версии. Invalidate увеличивает версию, а
// Set пишет под версией, прочитанной в Get до обращения к хранилищу. Снимок,
// прочитанный до изменения бронирований, попадает под старую версию и больше
// не читается.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ProviderBooking/internal/domain"
	"github.com/m04kA/SMC-ProviderBooking/pkg/types"
)

// ErrCache возвращается при ошибках обращения к Redis
var ErrCache = errors.New("slots.cache: redis error")

// versionTTLFactor во сколько раз счетчик версии живет дольше записи
const versionTTLFactor = 2

// redisClient часть redis.UniversalClient, используемая кэшем
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Snapshot результат чтения кэша.
// Version передается в Set, чтобы не перезаписать данные после Invalidate
type Snapshot struct {
	Slots   []types.TimeString
	Found   bool
	Version int64
}

// RedisCache cache-aside кэш свободных слотов
type RedisCache struct {
	client redisClient
	ttl    time.Duration
	prefix string
}

// NewRedisCache создает кэш с временем жизни записей ttl
func NewRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "slots"}
}

// Key ключ записи: slots:<providerId>:<YYYY-MM-DD>:<version>
func (c *RedisCache) Key(providerID int64, date time.Time, version int64) string {
	return fmt.Sprintf("%s:%d:%s:%d", c.prefix, providerID, date.Format(domain.DateFormat), version)
}

// VersionKey ключ счетчика версии: slots:<providerId>:<YYYY-MM-DD>:version
func (c *RedisCache) VersionKey(providerID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s:version", c.prefix, providerID, date.Format(domain.DateFormat))
}

// Get читает текущую версию и закэшированные слоты под ней.
// Промах возвращает Found=false и версию для последующего Set
func (c *RedisCache) Get(ctx context.Context, providerID int64, date time.Time) (Snapshot, error) {
	version, err := c.client.Get(ctx, c.VersionKey(providerID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		version = 0
	} else if err != nil {
		return Snapshot{}, fmt.Errorf("%w: get version: %v", ErrCache, err)
	}

	raw, err := c.client.Get(ctx, c.Key(providerID, date, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{Version: version}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var slots []types.TimeString
	if err := json.Unmarshal(raw, &slots); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}

	return Snapshot{Slots: slots, Found: true, Version: version}, nil
}

// Set сохраняет свободные слоты под версией, прочитанной в Get
func (c *RedisCache) Set(ctx context.Context, providerID int64, date time.Time, version int64, slots []types.TimeString) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, c.Key(providerID, date, version), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}

	return nil
}

// Invalidate увеличивает версию после изменения бронирований исполнителя на дату
func (c *RedisCache) Invalidate(ctx context.Context, providerID int64, date time.Time) error {
	key := c.VersionKey(providerID, date)

	if err := c.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: incr version: %v", ErrCache, err)
	}
	// Счетчик переживает все записи своих версий, иначе после сброса в 0
	// снова станет видна старая запись
	if err := c.client.Expire(ctx, key, versionTTLFactor*c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: expire version: %v", ErrCache, err)
	}

	return nil
}

// NopCache кэш, который ничего не хранит (кэш выключен)
type NopCache struct{}

func (NopCache) Get(ctx context.Context, providerID int64, date time.Time) (Snapshot, error) {
	return Snapshot{}, nil
}

func (NopCache) Set(ctx context.Context, providerID int64, date time.Time, version int64, slots []types.TimeString) error {
	return nil
}

func (NopCache) Invalidate(ctx context.Context, providerID int64, date time.Time) error {
	return nil
}
