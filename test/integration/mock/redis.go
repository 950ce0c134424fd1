package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis starts a shared miniredis server and returns a client bound to it.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *redis.Client {
	var err error
	redisServer, err = miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(&redis.Options{
		Addr: redisServer.Addr(),
	})
}

// ClearRedis drops every key, including rate-limit counters and sweep locks.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// HasRedisKey reports whether the shared server holds the key.
func HasRedisKey(key string) bool {
	if redisServer == nil {
		return false
	}
	return redisServer.Exists(key)
}
