// Package cached wraps providers with a daily response cache kept in
// archive storage. Entries live under <kind>/<YYYY-MM-DD>/<key>.json, so a
// new day never reads yesterday's NAVs.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/newthinker/navscope/internal/core"
	"github.com/newthinker/navscope/internal/provider"
	"github.com/newthinker/navscope/internal/storage/archive"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// Cache entry kinds
const (
	KindDetails = "details"
	KindHistory = "history"
	KindCatalog = "catalog"
)

var kinds = []string{KindDetails, KindHistory, KindCatalog}

// Observer is notified of every cache lookup
type Observer interface {
	CacheLookup(kind string, hit bool)
}

// Option configures a cache wrapper
type Option func(*cache)

// WithClock overrides the clock used to pick the cache day
func WithClock(now func() time.Time) Option {
	return func(c *cache) { c.now = now }
}

// WithObserver reports hits and misses
func WithObserver(o Observer) Option {
	return func(c *cache) { c.observer = o }
}

type cache struct {
	store    archive.Storage
	logger   *zap.Logger
	now      func() time.Time
	observer Observer
}

func newCache(store archive.Storage, logger *zap.Logger, opts []Option) cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cache{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *cache) key(kind, id string) string {
	return path.Join(kind, c.now().Format(dayLayout), id+".json")
}

func (c *cache) observe(kind string, hit bool) {
	if c.observer != nil {
		c.observer.CacheLookup(kind, hit)
	}
}

// load returns the cached value for key or calls fetch and stores its
// result. Storage failures never fail the lookup.
func load[T any](ctx context.Context, c *cache, kind, id string, fetch func() (T, error)) (T, error) {
	key := c.key(kind, id)

	data, err := c.store.Read(ctx, key)
	if err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			c.observe(kind, true)
			c.logger.Debug("cache hit", zap.String("key", key))
			return v, nil
		}
		c.logger.Warn("discarding corrupt cache entry", zap.String("key", key))
	} else if !errors.Is(err, core.ErrCacheMiss) {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.observe(kind, false)

	v, err := fetch()
	if err != nil {
		return v, err
	}

	data, err = json.Marshal(v)
	if err == nil {
		err = c.store.Write(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("cache write failed (ignored)", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

// Provider caches a provider.Provider
type Provider struct {
	next provider.Provider
	cache
}

// New wraps next with the daily cache
func New(next provider.Provider, store archive.Storage, logger *zap.Logger, opts ...Option) *Provider {
	return &Provider{next: next, cache: newCache(store, logger, opts)}
}

func (p *Provider) Name() string {
	return p.next.Name()
}

func (p *Provider) SchemeDetails(ctx context.Context, code string) (*core.FundMetadata, error) {
	code, err := provider.ValidateCode(code)
	if err != nil {
		return nil, err
	}
	meta, err := load(ctx, &p.cache, KindDetails, p.next.Name()+"-"+code, func() (core.FundMetadata, error) {
		m, err := p.next.SchemeDetails(ctx, code)
		if err != nil {
			return core.FundMetadata{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (p *Provider) SchemeHistory(ctx context.Context, code string) ([]core.RawPoint, error) {
	code, err := provider.ValidateCode(code)
	if err != nil {
		return nil, err
	}
	return load(ctx, &p.cache, KindHistory, p.next.Name()+"-"+code, func() ([]core.RawPoint, error) {
		return p.next.SchemeHistory(ctx, code)
	})
}

// Catalog caches a provider.CatalogSource
type Catalog struct {
	next provider.CatalogSource
	cache
}

// NewCatalog wraps next with the daily cache
func NewCatalog(next provider.CatalogSource, store archive.Storage, logger *zap.Logger, opts ...Option) *Catalog {
	return &Catalog{next: next, cache: newCache(store, logger, opts)}
}

func (c *Catalog) Name() string {
	return c.next.Name()
}

func (c *Catalog) Schemes(ctx context.Context) ([]core.Scheme, error) {
	return load(ctx, &c.cache, KindCatalog, c.next.Name(), func() ([]core.Scheme, error) {
		return c.next.Schemes(ctx)
	})
}

// Prune deletes entries cached on days before today and returns how many
// were removed
func Prune(ctx context.Context, store archive.Storage, today time.Time) (int, error) {
	cutoff := today.Format(dayLayout)
	removed := 0

	for _, kind := range kinds {
		paths, err := store.List(ctx, kind)
		if err != nil {
			return removed, fmt.Errorf("listing %s: %w", kind, err)
		}
		for _, p := range paths {
			parts := strings.Split(p, "/")
			if len(parts) != 3 || parts[0] != kind {
				continue
			}
			if _, err := time.Parse(dayLayout, parts[1]); err != nil {
				continue
			}
			if parts[1] >= cutoff {
				continue
			}
			if err := store.Delete(ctx, p); err != nil {
				return removed, fmt.Errorf("deleting %s: %w", p, err)
			}
			removed++
		}
	}

	return removed, nil
}
