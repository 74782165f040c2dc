package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"goldrateservice/internal/repository"
)

const cacheKeyLatest = "gold_rate:latest"

// setLatestScript stores the rate only when the cached entry is missing or not
// newer, so a slow reader can never put back a rate older than one already
// written by an insert.
// KEYS[1]=key ARGV: id, buy, sell, updated_at_ms, ttl_ms
var setLatestScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'updated_at_ms')
if cur and tonumber(cur) > tonumber(ARGV[4]) then
  return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'buy', ARGV[2], 'sell', ARGV[3], 'updated_at_ms', ARGV[4])
if tonumber(ARGV[5]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[5])
end
return 1
`)

func (s *RateService) cacheGetLatest(ctx context.Context) (*repository.Rate, bool) {
	if s.cache == nil {
		return nil, false
	}

	vals, err := s.cache.HMGet(ctx, cacheKeyLatest, "id", "buy", "sell", "updated_at_ms").Result()
	if err != nil || len(vals) != 4 {
		return nil, false
	}

	fields := make([]string, len(vals))
	for i, v := range vals {
		str, ok := asString(v)
		if !ok {
			return nil, false
		}
		fields[i] = str
	}

	buy, err := decimal.NewFromString(fields[1])
	if err != nil {
		return nil, false
	}
	sell, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, false
	}
	ms, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, false
	}

	return &repository.Rate{
		ID:        fields[0],
		Buy:       buy,
		Sell:      sell,
		UpdatedAt: time.UnixMilli(ms).UTC(),
	}, true
}

// cacheSetLatest offers r as the latest rate. It is a no-op when the cache
// already holds a newer record.
func (s *RateService) cacheSetLatest(ctx context.Context, r *repository.Rate) error {
	if s.cache == nil || r == nil {
		return nil
	}

	err := setLatestScript.Run(ctx, s.cache, []string{cacheKeyLatest},
		r.ID,
		r.Buy.String(),
		r.Sell.String(),
		r.UpdatedAt.UnixMilli(),
		s.latestRateTTL.Milliseconds(),
	).Err()
	if err != nil {
		s.log.Warnw("Failed to update cache", "key", cacheKeyLatest, "error", err)
	}
	return err
}

// cacheInvalidateLatest drops the cached latest rate; the next read
// repopulates it from the store.
func (s *RateService) cacheInvalidateLatest(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKeyLatest).Err(); err != nil {
		s.log.Warnw("Failed to invalidate cache", "key", cacheKeyLatest, "error", err)
	}
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}
