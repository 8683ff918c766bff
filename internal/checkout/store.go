package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const (
	defaultSessionTTL = 72 * time.Hour
	defaultLockTTL    = 10 * time.Second
)

// Locker serializes work on one session.
type Locker interface {
	AcquireWait(ctx context.Context, wait, step time.Duration) error
	Release(ctx context.Context) error
}

type redisStore interface {
	redis.LockStore
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key string, members ...string) error
	ZRangeByScoreMax(ctx context.Context, key string, max float64) ([]string, error)
	SessionKey(sessionID string) string
	SessionLockKey(sessionID string) string
	SubmittingIndexKey() string
}

// RedisStore snapshots sessions in Redis and indexes those mid-submission by
// submission start time.
type RedisStore struct {
	client     redisStore
	sessionTTL time.Duration
	lockTTL    time.Duration
}

// NewRedisStore builds the session store. Zero durations use defaults.
func NewRedisStore(client redisStore, sessionTTL, lockTTL time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &RedisStore{client: client, sessionTTL: sessionTTL, lockTTL: lockTTL}, nil
}

// Load returns nil when the session does not exist or has expired.
func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.SessionKey(id.String()))
	if errors.Is(err, redis.ErrNil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save writes the snapshot and keeps the submitting index in step with the state.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.client.SessionKey(sess.ID.String()), string(buf), s.sessionTTL); err != nil {
		return err
	}
	if sess.State == enums.CheckoutStateSubmitting && sess.LastSubmission != nil {
		score := float64(sess.LastSubmission.StartedAt.Unix())
		return s.client.ZAdd(ctx, s.client.SubmittingIndexKey(), score, sess.ID.String())
	}
	return s.client.ZRem(ctx, s.client.SubmittingIndexKey(), sess.ID.String())
}

// Lock returns the per-session lock.
func (s *RedisStore) Lock(id uuid.UUID) (Locker, error) {
	lock, err := redis.NewLock(s.client, s.client.SessionLockKey(id.String()), s.lockTTL)
	if err != nil {
		return nil, err
	}
	return lock, nil
}

// StaleSubmitting lists sessions whose submission started at or before cutoff.
func (s *RedisStore) StaleSubmitting(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	members, err := s.client.ZRangeByScoreMax(ctx, s.client.SubmittingIndexKey(), float64(cutoff.Unix()))
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Forget drops a session from the submitting index.
func (s *RedisStore) Forget(ctx context.Context, id uuid.UUID) error {
	return s.client.ZRem(ctx, s.client.SubmittingIndexKey(), id.String())
}
