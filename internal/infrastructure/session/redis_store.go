// Package session holds the server-side session store implementations and
// the signed cookie codec that carries the session ID to the browser. The
// backend bearer token never leaves the server.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aidtrack/dashboard-api/internal/core/domain"
	"github.com/aidtrack/dashboard-api/internal/core/ports"
)

const keyPrefix = "session:"

// RedisStore persists each session as a single JSON value under one key, so
// user and token are replaced and removed together; no partial session is
// ever observable.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisStore wraps the given Redis client. Sessions expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, log: log}
}

func (s *RedisStore) key(sid string) string {
	return keyPrefix + sid
}

// Load returns the session for sid. A missing key or a record that fails to
// decode both yield an empty session: corruption is recovered from silently,
// only store unavailability is an error.
func (s *RedisStore) Load(ctx context.Context, sid string) (domain.Session, error) {
	if sid == "" {
		return domain.Session{}, nil
	}

	raw, err := s.client.Get(ctx, s.key(sid)).Result()
	if err == redis.Nil {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("session load: %w: %w", ports.ErrStoreUnavailable, err)
	}

	return s.decode(sid, raw), nil
}

// decode parses a persisted session record. Malformed data is treated as an
// absent session: the user re-authenticates instead of seeing an error.
func (s *RedisStore) decode(sid, raw string) domain.Session {
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.log.Warn().Str("sid", sid).Err(err).Msg("malformed persisted session, treating as absent")
		return domain.Session{}
	}
	return sess
}

func (s *RedisStore) Set(ctx context.Context, sid string, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session set: encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w: %w", ports.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session clear: %w: %w", ports.ErrStoreUnavailable, err)
	}
	return nil
}
