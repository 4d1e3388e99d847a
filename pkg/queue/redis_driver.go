package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/plantnet/pkg/logger"
)

const (
	redisPendingKey   = "plantnet:queue:pending"
	redisScheduledKey = "plantnet:queue:scheduled"

	redisPopTimeout   = 5 * time.Second
	redisPromoteEvery = time.Second
)

// RedisDriver stores the queue in Redis so the server and standalone
// queue:work processes share one backlog. Immediate jobs live in a list
// (LPUSH/BRPOP); scheduled jobs wait in a sorted set keyed by their due
// time and are promoted by a background loop.
type RedisDriver struct {
	rdb  *redis.Client
	stop chan struct{}
}

// NewRedisDriver wraps an already-connected client. Call Close to stop the
// promotion loop.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb, stop: make(chan struct{})}
	go d.promoteLoop()
	return d
}

// Close stops the scheduled-job promotion loop. The client itself belongs
// to the caller.
func (d *RedisDriver) Close() {
	select {
	case <-d.stop:
	default:
		close(d.stop)
	}
}

// Push enqueues a payload for immediate processing.
func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(context.Background(), redisPendingKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks for up to redisPopTimeout waiting for a payload. A nil, nil
// return means the wait timed out with nothing pending; workers loop.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.rdb.BRPop(ctx, redisPopTimeout, redisPendingKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	// BRPop returns [key, value].
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// PushDelayed parks a payload in the scheduled set until its due time.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	due := redis.Z{
		Score:  float64(time.Now().Add(delay).Unix()),
		Member: string(payload),
	}
	if err := d.rdb.ZAdd(context.Background(), redisScheduledKey, due).Err(); err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

// promoteLoop moves due scheduled jobs onto the pending list.
func (d *RedisDriver) promoteLoop() {
	ticker := time.NewTicker(redisPromoteEvery)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			d.promoteDue()
		}
	}
}

func (d *RedisDriver) promoteDue() {
	ctx := context.Background()
	now := strconv.FormatInt(time.Now().Unix(), 10)

	due, err := d.rdb.ZRangeByScore(ctx, redisScheduledKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		logger.Error("queue/redis: scan scheduled", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	pipe := d.rdb.TxPipeline()
	for _, payload := range due {
		pipe.ZRem(ctx, redisScheduledKey, payload)
		pipe.LPush(ctx, redisPendingKey, []byte(payload))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("queue/redis: promote scheduled", "error", err)
	}
}
