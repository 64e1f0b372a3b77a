package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/newthinker/navscope/internal/core"
	"github.com/newthinker/navscope/internal/provider"
)

// Catalog is the scheme code -> name index used for fund search. It is
// loaded from its source on first use and kept for the catalog's lifetime.
type Catalog struct {
	source provider.CatalogSource

	mu      sync.Mutex
	loaded  bool
	schemes []core.Scheme
	byCode  map[string]int
}

// New creates a catalog backed by source
func New(source provider.CatalogSource) *Catalog {
	return &Catalog{source: source}
}

// Load fetches the catalog if it has not been loaded yet. A failed load is
// retried on the next call.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	schemes, err := c.source.Schemes(ctx)
	if err != nil {
		return core.WrapError(core.ErrCatalogUnavailable, fmt.Errorf("loading from %s: %w", c.source.Name(), err))
	}

	c.schemes = make([]core.Scheme, 0, len(schemes))
	c.byCode = make(map[string]int, len(schemes))
	for _, s := range schemes {
		if _, dup := c.byCode[s.Code]; dup {
			continue
		}
		c.byCode[s.Code] = len(c.schemes)
		c.schemes = append(c.schemes, s)
	}
	c.loaded = true
	return nil
}

// Len returns the number of schemes, loading the catalog if needed
func (c *Catalog) Len(ctx context.Context) (int, error) {
	if err := c.Load(ctx); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.schemes), nil
}

// Size returns the number of schemes without triggering a load
func (c *Catalog) Size() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.schemes), c.loaded
}

// Search returns schemes whose name contains query, ignoring case, in
// catalog order. The total match count is returned alongside at most
// limit schemes; limit <= 0 returns every match.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]core.Scheme, int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, 0, core.WrapError(core.ErrInvalidQuery, fmt.Errorf("query cannot be empty"))
	}
	if err := c.Load(ctx); err != nil {
		return nil, 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var matches []core.Scheme
	total := 0
	for _, s := range c.schemes {
		if !strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		total++
		if limit <= 0 || len(matches) < limit {
			matches = append(matches, s)
		}
	}
	return matches, total, nil
}

// Lookup finds a scheme by code
func (c *Catalog) Lookup(ctx context.Context, code string) (core.Scheme, bool, error) {
	if err := c.Load(ctx); err != nil {
		return core.Scheme{}, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byCode[strings.TrimSpace(code)]
	if !ok {
		return core.Scheme{}, false, nil
	}
	return c.schemes[i], true, nil
}
