package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/redis/go-redis/v9"
	"time"
)

const keyPrefix = "bodyfat:estimate:"

// RedisCache shares results between server replicas. Entries hold only
// anonymous estimates keyed by a digest of the measurements.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ttl:    ttl,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (estimate.Result, bool, error) {
	val, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return estimate.Result{}, false, nil
	}
	if err != nil {
		return estimate.Result{}, false, err
	}

	result, err := decode(val)
	if err != nil {
		return estimate.Result{}, false, err
	}
	return result, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, result estimate.Result) error {
	val, err := encode(result)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(key), val, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func redisKey(key string) string {
	return keyPrefix + key
}

type cachedResult struct {
	BMI             *float64 `json:"bmi,omitempty"`
	BMIBased        *float64 `json:"bmi_based,omitempty"`
	Navy            *float64 `json:"navy,omitempty"`
	RelativeFatMass *float64 `json:"rfm,omitempty"`
	CunBae          *float64 `json:"cun_bae,omitempty"`
	Ecore           *float64 `json:"ecore,omitempty"`
	AverageBf       *float64 `json:"average_bf,omitempty"`
}

func encode(r estimate.Result) ([]byte, error) {
	return json.Marshal(cachedResult(r))
}

func decode(data []byte) (estimate.Result, error) {
	var c cachedResult
	if err := json.Unmarshal(data, &c); err != nil {
		return estimate.Result{}, fmt.Errorf("corrupted cache entry: %w", err)
	}
	return estimate.Result(c), nil
}
