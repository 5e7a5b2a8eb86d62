package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/token"
)

const pingTimeout = 5 * time.Second

// Internal adapter interface to enable mocking without a real Redis server.
type redisAPI interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Close() error
}

// Wrapper to adapt *redis.Client to redisAPI.
type redisClientWrapper struct{ c *redis.Client }

func (w redisClientWrapper) Get(ctx context.Context, key string) (string, error) {
	return w.c.Get(ctx, key).Result()
}

func (w redisClientWrapper) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return w.c.Set(ctx, key, value, ttl).Err()
}

func (w redisClientWrapper) Del(ctx context.Context, key string) error {
	return w.c.Del(ctx, key).Err()
}

func (w redisClientWrapper) Close() error {
	return w.c.Close()
}

var _ model.SessionStore = (*RedisStore)(nil)

// RedisStore keeps the session under a single key so that several
// machines share one login. The key expires with the token when the token
// carries an expiry.
type RedisStore struct {
	api    redisAPI
	key    string
	logger *logger.Logger
	now    func() time.Time
}

// NewRedisStore connects to the Redis server at url and checks it answers.
func NewRedisStore(ctx context.Context, url, key string, logger *logger.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithAPI(redisClientWrapper{c: rdb}, key, logger), nil
}

// NewRedisStoreWithAPI allows injecting a mockable API (used in tests).
func NewRedisStoreWithAPI(api redisAPI, key string, logger *logger.Logger) *RedisStore {
	return &RedisStore{api: api, key: key, logger: logger, now: time.Now}
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Load reads the session. A missing key is an empty session.
func (s *RedisStore) Load(ctx context.Context) (model.Session, error) {
	raw, err := s.api.Get(ctx, s.key)
	if errors.Is(err, redis.Nil) {
		return model.Session{}, nil
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return model.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return sess, nil
}

// Save writes the session with the token's remaining lifetime as TTL. An
// already expired token removes the key and returns model.ErrSessionExpired,
// since a zero TTL would keep it forever.
func (s *RedisStore) Save(ctx context.Context, sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	var ttl time.Duration
	if claims, err := token.Inspect(sess.Token); err == nil {
		now := s.now()
		if claims.Expired(now) {
			s.logger.Debug("Session store: refusing expired token", "expired_at", claims.Expiry())
			if err := s.api.Del(ctx, s.key); err != nil {
				return fmt.Errorf("failed to remove expired session: %w", err)
			}
			return model.ErrSessionExpired
		}
		ttl = claims.TTL(now)
	} else {
		s.logger.Debug("Session store: token expiry unknown, storing without ttl",
			"error", err.Error())
	}

	if err := s.api.Set(ctx, s.key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.api.Del(ctx, s.key); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Close releases the connection.
func (s *RedisStore) Close() error {
	return s.api.Close()
}
