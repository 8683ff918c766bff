package tenants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	store := &fakeCacheStore{data: map[string]string{}}
	cache, err := NewRedisCache(store, 0)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	if cache.ttl != defaultCacheTTL {
		t.Fatalf("expected default ttl")
	}

	lookup := Lookup{Host: "Demo.Example.com:80"}
	if res, err := cache.Load(context.Background(), lookup); err != nil || res != nil {
		t.Fatalf("expected miss, got %#v %v", res, err)
	}

	want := &Resolution{Tenant: TenantDTO{ID: uuid.New(), Handle: "demo"}, MatchedBy: MatchDomain}
	if err := cache.Save(context.Background(), lookup, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.data["host:demo.example.com"]; !ok {
		t.Fatalf("expected normalized host key, got %v", store.data)
	}
	got, err := cache.Load(context.Background(), lookup)
	if err != nil || got == nil || got.Tenant.ID != want.Tenant.ID {
		t.Fatalf("unexpected cached value %#v %v", got, err)
	}

	pathLookup := Lookup{Host: "localhost", PathHandle: "demo"}
	if res, _ := cache.Load(context.Background(), pathLookup); res != nil {
		t.Fatalf("path lookups use a separate key")
	}
}

func TestRedisCacheNormalizesPathHandle(t *testing.T) {
	store := &fakeCacheStore{data: map[string]string{}}
	cache, err := NewRedisCache(store, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	want := &Resolution{Tenant: TenantDTO{ID: uuid.New(), Handle: "demo"}, MatchedBy: MatchPath}
	if err := cache.Save(context.Background(), Lookup{Host: "localhost", PathHandle: "Demo"}, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.data["handle:demo@localhost"]; !ok || len(store.data) != 1 {
		t.Fatalf("expected one lower-cased handle key, got %v", store.data)
	}
	got, err := cache.Load(context.Background(), Lookup{Host: "LOCALHOST:8080", PathHandle: " demo "})
	if err != nil || got == nil || got.Tenant.ID != want.Tenant.ID {
		t.Fatalf("expected hit for equivalent handle, got %#v %v", got, err)
	}
}

type fakeCacheStore struct {
	data map[string]string
}

func (f *fakeCacheStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (f *fakeCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCacheStore) TenantHostKey(host string) string     { return "host:" + host }
func (f *fakeCacheStore) TenantHandleKey(handle string) string { return "handle:" + handle }
