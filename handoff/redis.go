package handoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis 将槽保存在 Redis 中，Take 使用 GETDEL 保证只被读取一次。
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Slots = (*Redis)(nil)

// NewRedis 连接 addr 上的 Redis，所有键加上 prefix 前缀。
func NewRedis(addr, prefix string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

// Ping 检查连接是否可用。
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close 关闭客户端。
func (r *Redis) Close() error { return r.client.Close() }

// Put 写入 key，不设过期时间。
func (r *Redis) Put(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("写入槽 %s 失败: %w", key, err)
	}
	return nil
}

// Take 读取并删除 key。
func (r *Redis) Take(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.GetDel(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("读取槽 %s 失败: %w", key, err)
	}
	return value, true, nil
}
