package knowledge

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// mapCache is an in-memory redis.Cache for decorator tests.
type mapCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	fail  bool
	loads int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (m *mapCache) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New(errors.ErrCodeCacheError, "cache down")
	}
	raw, ok := m.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mapCache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, loader func(ctx context.Context) (any, error)) error {
	if m.fail {
		return errors.New(errors.ErrCodeCacheError, "cache down")
	}
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

// countingProvider records call counts per source.
type countingProvider struct {
	mu            sync.Mutex
	wikiCalls     int
	wikidataCalls int
	newsCalls     int
	wikidataNil   bool
}

func (p *countingProvider) Wikipedia(context.Context, string) WikipediaData {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wikiCalls++
	return WikipediaData{Exists: true, Title: "Acme"}
}

func (p *countingProvider) Wikidata(context.Context, string) *WikidataInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wikidataCalls++
	if p.wikidataNil {
		return nil
	}
	return &WikidataInfo{ID: "Q42"}
}

func (p *countingProvider) News(context.Context, string, string) []NewsArticle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newsCalls++
	return []NewsArticle{{Title: "Acme in the news"}}
}

func TestCachedProvider_SecondLookupHitsCache(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, newMapCache(), time.Hour, logging.NewNopLogger())
	ctx := context.Background()

	first := cached.Wikipedia(ctx, "Acme")
	second := cached.Wikipedia(ctx, "Acme")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.wikiCalls)

	require.NotNil(t, cached.Wikidata(ctx, "Acme"))
	require.NotNil(t, cached.Wikidata(ctx, "Acme"))
	assert.Equal(t, 1, inner.wikidataCalls)

	assert.Len(t, cached.News(ctx, "Acme", "Panama"), 1)
	assert.Len(t, cached.News(ctx, "Acme", "Panama"), 1)
	assert.Equal(t, 1, inner.newsCalls)
}

func TestCachedProvider_NewsKeyIncludesJurisdiction(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, newMapCache(), time.Hour, logging.NewNopLogger())
	ctx := context.Background()

	cached.News(ctx, "Acme", "Panama")
	cached.News(ctx, "Acme", "Malta")
	assert.Equal(t, 2, inner.newsCalls)
}

func TestCachedProvider_NilWikidataIsCached(t *testing.T) {
	inner := &countingProvider{wikidataNil: true}
	cached := NewCachedProvider(inner, newMapCache(), time.Hour, logging.NewNopLogger())
	ctx := context.Background()

	assert.Nil(t, cached.Wikidata(ctx, "Unknown Ltd"))
	assert.Nil(t, cached.Wikidata(ctx, "Unknown Ltd"))
	assert.Equal(t, 1, inner.wikidataCalls)
}

func TestCachedProvider_CacheFailureFallsThrough(t *testing.T) {
	inner := &countingProvider{}
	cache := newMapCache()
	cache.fail = true
	cached := NewCachedProvider(inner, cache, time.Hour, logging.NewNopLogger())
	ctx := context.Background()

	got := cached.Wikipedia(ctx, "Acme")
	assert.True(t, got.Exists)
	assert.Equal(t, 1, inner.wikiCalls)

	require.NotNil(t, cached.Wikidata(ctx, "Acme"))
	assert.Len(t, cached.News(ctx, "Acme", ""), 1)
}
