package knowledge

import (
	"context"
	"time"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// CachedProvider decorates a Provider with a TTL cache.  Knowledge sources
// are slow public APIs and transactions frequently repeat entities, so even a
// short TTL removes most upstream calls.
type CachedProvider struct {
	inner  Provider
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedProvider wraps inner with cache.
func NewCachedProvider(inner Provider, cache redis.Cache, ttl time.Duration, log logging.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: log.Named("knowledge_cache"),
	}
}

func (p *CachedProvider) Wikipedia(ctx context.Context, entityName string) WikipediaData {
	var out WikipediaData
	err := p.cache.GetOrSet(ctx, "wiki:"+entityName, &out, p.ttl, func(ctx context.Context) (any, error) {
		return p.inner.Wikipedia(ctx, entityName), nil
	})
	if err != nil {
		p.logger.Warn("wikipedia cache path failed, calling source directly",
			logging.String("entity", entityName), logging.Err(err))
		return p.inner.Wikipedia(ctx, entityName)
	}
	return out
}

func (p *CachedProvider) Wikidata(ctx context.Context, entityName string) *WikidataInfo {
	// A nil info (source had nothing) is cached as an empty record so repeat
	// misses do not re-query the source inside the TTL window.
	var out WikidataInfo
	err := p.cache.GetOrSet(ctx, "wikidata:"+entityName, &out, p.ttl, func(ctx context.Context) (any, error) {
		info := p.inner.Wikidata(ctx, entityName)
		if info == nil {
			return WikidataInfo{}, nil
		}
		return *info, nil
	})
	if err != nil {
		p.logger.Warn("wikidata cache path failed, calling source directly",
			logging.String("entity", entityName), logging.Err(err))
		return p.inner.Wikidata(ctx, entityName)
	}
	if out.ID == "" {
		return nil
	}
	return &out
}

func (p *CachedProvider) News(ctx context.Context, entityName, jurisdiction string) []NewsArticle {
	var out []NewsArticle
	key := "news:" + entityName + ":" + jurisdiction
	err := p.cache.GetOrSet(ctx, key, &out, p.ttl, func(ctx context.Context) (any, error) {
		articles := p.inner.News(ctx, entityName, jurisdiction)
		if articles == nil {
			articles = []NewsArticle{}
		}
		return articles, nil
	})
	if err != nil {
		p.logger.Warn("news cache path failed, calling source directly",
			logging.String("entity", entityName), logging.Err(err))
		return p.inner.News(ctx, entityName, jurisdiction)
	}
	return out
}
