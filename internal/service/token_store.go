package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore 已吊销 token 的记录（logout 用），按 jti 存到过期为止
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) TokenStore { return &redisTokenStore{rdb: rdb} }

func revokedKey(jti string) string { return "auth:revoked:" + jti }

func (s *redisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 已过期的 token 无需入黑名单
		return nil
	}
	return s.rdb.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *redisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
