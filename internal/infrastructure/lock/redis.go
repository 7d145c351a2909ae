package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// releaseScript deletes the key only when it still holds the caller's token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisCommands interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisBackend holds leases with SET NX PX.
type RedisBackend struct {
	client redisCommands
	prefix string
}

func NewRedisBackend(client redisCommands) *RedisBackend {
	return &RedisBackend{client: client, prefix: "txnlock:"}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) TryAcquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	return b.client.SetNX(ctx, b.prefix+key, owner, ttl).Result()
}

func (b *RedisBackend) Release(ctx context.Context, key, owner string) error {
	err := b.client.Eval(ctx, releaseScript, []string{b.prefix + key}, owner).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
