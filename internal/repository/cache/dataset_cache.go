package cache

import (
	"context"
	"sync"
	"time"

	"engagementReco/domain"
	"engagementReco/pkg/logger"
	"engagementReco/pkg/metrics"
)

// Source reads the raw dataset.
type Source interface {
	Load(ctx context.Context) ([]domain.UserRecord, error)
}

// Transform is applied once per successful load, before the table is cached.
type Transform func([]domain.UserRecord) []domain.UserRecord

// DatasetCache memoizes a Source for the process lifetime. The cached table
// is shared with callers and must be treated as read-only.
type DatasetCache struct {
	mu        sync.Mutex
	source    Source
	transform Transform
	path      string
	now       func() time.Time

	rows       []domain.UserRecord
	loaded     bool
	loadedAt   time.Time
	generation uint64
}

func NewDatasetCache(source Source, transform Transform, path string) *DatasetCache {
	return &DatasetCache{
		source:    source,
		transform: transform,
		path:      path,
		now:       time.Now,
	}
}

// Get returns the cached table, loading it on first use or after Invalidate.
// Failed loads are not cached.
func (c *DatasetCache) Get(ctx context.Context) ([]domain.UserRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		metrics.DatasetCacheHits.Inc()
		return c.rows, nil
	}

	return c.loadLocked(ctx)
}

// Reload reads the source again. On failure the previous table, if any, is kept.
func (c *DatasetCache) Reload(ctx context.Context) ([]domain.UserRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadLocked(ctx)
}

// Invalidate drops the cached table; the next Get reads the source.
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	c.rows = nil
	c.loaded = false
	metrics.DatasetInvalidations.Inc()
	metrics.DatasetRows.Set(0)
	logger.Info("Dataset cache invalidated", "path", c.path)
}

func (c *DatasetCache) Info() domain.DatasetInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.DatasetInfo{
		Path:       c.path,
		Loaded:     c.loaded,
		Rows:       len(c.rows),
		LoadedAt:   c.loadedAt,
		Generation: c.generation,
	}
}

func (c *DatasetCache) loadLocked(ctx context.Context) ([]domain.UserRecord, error) {
	start := c.now()
	rows, err := c.source.Load(ctx)
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if c.transform != nil {
		rows = c.transform(rows)
	}

	c.rows = rows
	c.loaded = true
	c.loadedAt = c.now()
	c.generation++

	metrics.DatasetLoadsTotal.WithLabelValues("success").Inc()
	metrics.DatasetLoadDuration.Observe(c.loadedAt.Sub(start).Seconds())
	metrics.DatasetRows.Set(float64(len(rows)))
	logger.Info("Dataset loaded", "path", c.path, "rows", len(rows), "generation", c.generation)

	return c.rows, nil
}
