package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

// NewRedisClient connects using a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisSlotCache keeps one hash per (barber, date); each field is a service
// set. Invalidating a day deletes the whole hash.
//
// Generation counters live under "slotgen:" so the barber SCAN over
// "slots:<id>:*" never touches them.
type RedisSlotCache struct {
	client  *redis.Client
	ttl     time.Duration
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewRedisSlotCache(
	client *redis.Client,
	ttl time.Duration,
	log zerolog.Logger,
	m *metrics.Metrics,
) *RedisSlotCache {
	return &RedisSlotCache{
		client:  client,
		ttl:     ttl,
		log:     log,
		metrics: m,
	}
}

func (c *RedisSlotCache) Get(ctx context.Context, key availability.Key) (*availability.Day, bool) {
	raw, err := c.client.HGet(ctx, availability.DayScope(key.BarberID, key.Date), key.ServicesField()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("slot cache get failed")
		}
		c.metrics.ObserveCache(false)
		return nil, false
	}

	var day availability.Day
	if err := json.Unmarshal(raw, &day); err != nil {
		c.log.Warn().Err(err).Msg("slot cache entry unreadable")
		c.metrics.ObserveCache(false)
		return nil, false
	}

	c.metrics.ObserveCache(true)
	return &day, true
}

func dayGenKey(barberID uint, date string) string {
	return fmt.Sprintf("slotgen:%d:%s", barberID, date)
}

func barberGenKey(barberID uint) string {
	return fmt.Sprintf("slotgen:%d", barberID)
}

func genKeys(key availability.Key) []string {
	return []string{dayGenKey(key.BarberID, key.Date), barberGenKey(key.BarberID)}
}

type mgetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func readStamp(ctx context.Context, c mgetter, key availability.Key) (availability.Stamp, error) {
	vals, err := c.MGet(ctx, genKeys(key)...).Result()
	if err != nil {
		return availability.Stamp{}, err
	}

	gens := make([]int64, len(vals))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			gens[i], _ = strconv.ParseInt(str, 10, 64)
		}
	}
	return availability.Stamp{Day: gens[0], Barber: gens[1]}, nil
}

// Stamp returns the zero Stamp when redis fails; Set then compares against
// whatever redis holds by the time it answers again.
func (c *RedisSlotCache) Stamp(ctx context.Context, key availability.Key) availability.Stamp {
	stamp, err := readStamp(ctx, c.client, key)
	if err != nil {
		c.log.Warn().Err(err).Msg("slot cache stamp failed")
	}
	return stamp
}

var errStaleStamp = errors.New("slot cache stamp is stale")

func (c *RedisSlotCache) Set(ctx context.Context, key availability.Key, day *availability.Day, stamp availability.Stamp) {
	raw, err := json.Marshal(day)
	if err != nil {
		return
	}

	scope := availability.DayScope(key.BarberID, key.Date)

	// WATCH makes EXEC fail if either generation moves after the compare.
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readStamp(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != stamp {
			return errStaleStamp
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, scope, key.ServicesField(), raw)
			pipe.Expire(ctx, scope, c.ttl)
			return nil
		})
		return err
	}, genKeys(key)...)

	switch {
	case err == nil, errors.Is(err, errStaleStamp), errors.Is(err, redis.TxFailedErr):
	default:
		c.log.Warn().Err(err).Str("scope", scope).Msg("slot cache set failed")
	}
}

func (c *RedisSlotCache) InvalidateDay(ctx context.Context, barberID uint, date string) {
	scope := availability.DayScope(barberID, date)
	gen := dayGenKey(barberID, date)

	// The counter outlives the hash it guards.
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, gen)
		pipe.Expire(ctx, gen, 2*c.ttl)
		pipe.Del(ctx, scope)
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("scope", scope).Msg("slot cache invalidation failed")
	}
}

func (c *RedisSlotCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if err := c.client.Incr(ctx, barberGenKey(barberID)).Err(); err != nil {
		c.log.Warn().Err(err).Uint("barber_id", barberID).Msg("slot cache generation bump failed")
	}

	match := availability.BarberScope(barberID) + "*"

	var keys []string
	iter := c.client.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("match", match).Msg("slot cache scan failed")
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Str("match", match).Msg("slot cache invalidation failed")
	}
}

var _ availability.Cache = (*RedisSlotCache)(nil)
