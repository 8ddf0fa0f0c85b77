package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "homestream:session:"

// RedisStore keeps sessions in Redis with native TTL expiry, so restarts do
// not log everyone out.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *RedisStore) Create(userID uuid.UUID, ttl time.Duration) (*Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if err := s.client.Set(ctx, redisKeyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (s *RedisStore) Get(token string) (*Session, error) {
	ctx := context.Background()
	val, err := s.client.Get(ctx, redisKeyPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		// Unparseable value means the key was not written by us.
		return nil, nil
	}
	ttl, err := s.client.TTL(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (s *RedisStore) Delete(token string) error {
	return s.client.Del(context.Background(), redisKeyPrefix+token).Err()
}

// Sweep is a no-op: Redis expires keys on its own.
func (s *RedisStore) Sweep() int { return 0 }
