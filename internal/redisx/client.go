package redisx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return r
}

func Exists(ctx context.Context, rdb *redis.Client, key string) (bool, error) {
	n, err := rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// FeedWake subscribes to the reservation change channel and collapses it
// into a wake signal for the feed hub. Bursts coalesce (buffer 1); the hub
// reloads the full snapshot per wake, so dropped intermediate publishes are
// harmless.
func FeedWake(ctx context.Context, rdb *redis.Client) <-chan struct{} {
	wake := make(chan struct{}, 1)
	sub := rdb.Subscribe(ctx, ChannelReservations)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					log.Printf("redisx: feed subscription closed")
					return
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			}
		}
	}()
	return wake
}
