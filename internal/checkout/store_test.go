package checkout

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	zsets  map[string]map[string]float64
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values: map[string]string{},
		ttls:   map[string]time.Duration{},
		zsets:  map[string]map[string]float64{},
	}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return true, nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) ZAdd(_ context.Context, key string, score float64, member string) error {
	if f.zsets[key] == nil {
		f.zsets[key] = map[string]float64{}
	}
	f.zsets[key][member] = score
	return nil
}

func (f *fakeRedis) ZRem(_ context.Context, key string, members ...string) error {
	for _, m := range members {
		delete(f.zsets[key], m)
	}
	return nil
}

func (f *fakeRedis) ZRangeByScoreMax(_ context.Context, key string, max float64) ([]string, error) {
	var out []string
	for member, score := range f.zsets[key] {
		if score <= max {
			out = append(out, member)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRedis) SessionKey(id string) string     { return "sf:session:" + id }
func (f *fakeRedis) SessionLockKey(id string) string { return "sf:lock:session:" + id }
func (f *fakeRedis) SubmittingIndexKey() string      { return "sf:submitting" }

func TestRedisStoreRoundTripAndIndex(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store, err := NewRedisStore(client, time.Hour, 0)
	require.NoError(t, err)

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := &Session{
		ID:        uuid.New(),
		TenantID:  uuid.New(),
		Currency:  "BHD",
		State:     enums.CheckoutStateSubmitting,
		CreatedAt: started,
		LastSubmission: &LastSubmission{
			SubmissionID: uuid.New(),
			Status:       SubmissionPending,
			StartedAt:    started,
		},
	}
	require.NoError(t, store.Save(ctx, sess))
	require.Equal(t, time.Hour, client.ttls["sf:session:"+sess.ID.String()])

	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.ID, loaded.ID)
	require.Equal(t, enums.CheckoutStateSubmitting, loaded.State)

	stale, err := store.StaleSubmitting(ctx, started.Add(-time.Second))
	require.NoError(t, err)
	require.Empty(t, stale)

	stale, err = store.StaleSubmitting(ctx, started.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{sess.ID}, stale)

	sess.State = enums.CheckoutStateCheckoutForm
	require.NoError(t, store.Save(ctx, sess))
	stale, err = store.StaleSubmitting(ctx, started.Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, stale)
}

func TestRedisStoreLoadMissing(t *testing.T) {
	store, err := NewRedisStore(newFakeRedis(), 0, 0)
	require.NoError(t, err)

	sess, err := store.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestRedisStoreLockIsPerSession(t *testing.T) {
	ctx := context.Background()
	store, err := NewRedisStore(newFakeRedis(), 0, time.Second)
	require.NoError(t, err)
	id := uuid.New()

	first, err := store.Lock(id)
	require.NoError(t, err)
	require.NoError(t, first.AcquireWait(ctx, 0, time.Millisecond))

	second, err := store.Lock(id)
	require.NoError(t, err)
	require.ErrorIs(t, second.AcquireWait(ctx, 5*time.Millisecond, time.Millisecond), redis.ErrLockNotAcquired)

	other, err := store.Lock(uuid.New())
	require.NoError(t, err)
	require.NoError(t, other.AcquireWait(ctx, 0, time.Millisecond))

	require.NoError(t, first.Release(ctx))
	require.NoError(t, second.AcquireWait(ctx, 0, time.Millisecond))
}
