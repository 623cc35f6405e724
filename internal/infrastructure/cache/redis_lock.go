package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cremacao_pet/internal/infrastructure/config"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const defaultLockPrefix = "cremacao:lock:"

// RedisLocker is a best-effort distributed mutex built on SET NX with a TTL. The TTL bounds how
// long a crashed holder can keep the lock.
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	owner  string
}

var _ interfaces.ILocker = (*RedisLocker)(nil)

// NewRedisClient connects and pings, so a misconfigured host fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisLocker(client *redis.Client, cfg config.RedisConfig, owner string) *RedisLocker {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisLocker{client: client, prefix: defaultLockPrefix, ttl: ttl, owner: owner}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+key, l.owner, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return ok, nil
}

// unlockScript deletes the key only while it still belongs to the caller.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	if err := unlockScript.Run(ctx, l.client, []string{l.prefix + key}, l.owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}
