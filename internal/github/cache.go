package github

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rybkr/branchvista/internal/timeline"
)

// Fetcher is the provider surface the rest of the application consumes.
type Fetcher interface {
	Repository(ctx context.Context, owner, repo string) (*Repo, error)
	Commits(ctx context.Context, owner, repo string, limit int) ([]timeline.Commit, error)
	Branches(ctx context.Context, owner, repo string) ([]timeline.Branch, error)
}

// CachingClient decorates a Fetcher with a TTL cache so periodic refreshes
// and concurrent dashboard views do not burn through the API rate limit.
// Errors are never cached.
type CachingClient struct {
	inner Fetcher
	cache *gocache.Cache
}

// NewCachingClient wraps a Fetcher with a cache holding entries for ttl.
func NewCachingClient(inner Fetcher, ttl time.Duration) *CachingClient {
	return &CachingClient{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachingClient) Repository(ctx context.Context, owner, repo string) (*Repo, error) {
	key := fmt.Sprintf("repo:%s/%s", owner, repo)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*Repo), nil
	}

	out, err := c.inner.Repository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

func (c *CachingClient) Commits(ctx context.Context, owner, repo string, limit int) ([]timeline.Commit, error) {
	key := fmt.Sprintf("commits:%s/%s:%d", owner, repo, limit)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]timeline.Commit), nil
	}

	out, err := c.inner.Commits(ctx, owner, repo, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}

func (c *CachingClient) Branches(ctx context.Context, owner, repo string) ([]timeline.Branch, error) {
	key := fmt.Sprintf("branches:%s/%s", owner, repo)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]timeline.Branch), nil
	}

	out, err := c.inner.Branches(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, out, gocache.DefaultExpiration)
	return out, nil
}
