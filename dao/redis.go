package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"support-agent/model"
)

var (
	ErrSessionConflict = errors.New("session conflict: stored session is newer")
	ErrInvalidSession  = errors.New("invalid session")
	ErrInvalidParam    = errors.New("invalid parameter")
)

// saveRetries is how many times an optimistic save is retried after a
// concurrent write.
const saveRetries = 3

// RedisStore keeps conversation sessions with an inactivity TTL. Every save
// refreshes the TTL, so a session that goes quiet for the full window simply
// disappears. That is the conversation-reset behaviour, not an error.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		keyPrefix: "support-agent:session:",
		ttl:       ttl,
	}
}

// Get returns the session, or nil if it never existed or its TTL lapsed.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	data, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save writes the session under WATCH so two desktop-agent windows on the
// same session cannot silently overwrite each other. On conflict the newer
// stored copy wins and the write is retried with a short backoff.
func (s *RedisStore) Save(ctx context.Context, session *model.Session) error {
	if session == nil {
		return fmt.Errorf("%w: session is nil", ErrInvalidSession)
	}
	if session.ID == "" {
		return fmt.Errorf("%w: session.ID is empty", ErrInvalidSession)
	}

	key := s.keyPrefix + session.ID
	var lastErr error

	for attempt := 0; attempt <= saveRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil {
				var stored model.Session
				if jerr := json.Unmarshal(current, &stored); jerr == nil && newerThan(stored.UpdatedAt, session.UpdatedAt) {
					return ErrSessionConflict
				}
			}
			data, err := json.Marshal(session)
			if err != nil {
				return err
			}
			return tx.Set(ctx, key, data, s.ttl).Err()
		}, key)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) && !errors.Is(err, ErrSessionConflict) {
			return err
		}
		lastErr = err
		if errors.Is(err, ErrSessionConflict) {
			// Somebody saved a newer copy; take its timestamp as the base
			// and try once more.
			session.UpdatedAt = time.Now().Format(time.RFC3339Nano)
		}
		time.Sleep(time.Duration(10*(attempt+1)) * time.Millisecond)
	}

	return fmt.Errorf("saving session %s: retries exhausted: %w", session.ID, lastErr)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is empty", ErrInvalidParam)
	}
	return s.client.Del(ctx, s.keyPrefix+sessionID).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// newerThan compares RFC3339 timestamps, falling back to a lexical compare
// when either fails to parse.
func newerThan(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a > b
}
