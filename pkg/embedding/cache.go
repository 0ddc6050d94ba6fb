package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider is a read-through cache around another Provider. Repeated
// queries (the same question asked again, follow-ups in a conversation) skip
// the remote call.
type CachedProvider struct {
	inner Provider
	cache *cache.Cache
}

func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (p *CachedProvider) Embed(ctx context.Context, text string, dimension int) ([]float32, error) {
	key := fmt.Sprintf("%d:%s", dimension, text)
	if x, found := p.cache.Get(key); found {
		return x.([]float32), nil
	}

	vec, err := p.inner.Embed(ctx, text, dimension)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, vec, cache.DefaultExpiration)
	return vec, nil
}
