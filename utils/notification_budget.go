package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// NotificationBudget caps how many notifications may be dispatched within one
// hour bucket. State lives in Redis so that the budget survives restarts and
// is shared across replicas.
type NotificationBudget struct {
	inner   *redis.Client
	perHour int
}

var ctx = context.Background()

func GetNotificationBudget(perHour int) (*NotificationBudget, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	return &NotificationBudget{
		inner:   redisClient,
		perHour: perHour,
	}, nil
}

func hourBucketKey(now time.Time) string {
	return fmt.Sprintf("notification_budget__%s", now.UTC().Format("2006010215"))
}

// Allow consumes one notification slot from the current hour bucket. Returns
// false once the hourly budget is exhausted. The bucket key expires on its own
// so old buckets don't accumulate.
func (b *NotificationBudget) Allow() (bool, error) {
	key := hourBucketKey(time.Now())

	count, err := b.inner.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in this bucket sets the expiry.
		if err := b.inner.Expire(ctx, key, 2*time.Hour).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(b.perHour), nil
}

// Refund returns one slot to the current hour bucket after a push that never
// went out. Without it, repeated delivery failures would burn the whole budget
// with nothing sent.
func (b *NotificationBudget) Refund() error {
	return b.inner.Decr(ctx, hourBucketKey(time.Now())).Err()
}

// PerHour reports the configured hourly cap.
func (b *NotificationBudget) PerHour() int {
	return b.perHour
}

// Remaining reports how many notification slots are left in the current hour.
func (b *NotificationBudget) Remaining() (int, error) {
	key := hourBucketKey(time.Now())
	count, err := b.inner.Get(ctx, key).Int()
	if err == redis.Nil {
		return b.perHour, nil
	}
	if err != nil {
		return 0, err
	}
	if count >= b.perHour {
		return 0, nil
	}
	return b.perHour - count, nil
}
