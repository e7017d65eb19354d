package source

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RowCache 原始行缓存
type RowCache interface {
	Get(ctx context.Context, key string) ([][]string, bool, error)
	Set(ctx context.Context, key string, rows [][]string) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheKey 缓存键：数据源 + 范围
func CacheKey(sourceID, rng string) string {
	return sourceID + "|" + rng
}

// Cached 带缓存的数据源；缓存读写失败只记日志，不影响取数
type Cached struct {
	next   Source
	cache  RowCache
	logger *zap.Logger
}

// NewCached 包装数据源
func NewCached(next Source, cache RowCache, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{next: next, cache: cache, logger: logger}
}

// FetchRows 命中缓存直接返回，否则回源并写入缓存；回源失败不写缓存
func (c *Cached) FetchRows(ctx context.Context, sourceID, rng string) ([][]string, error) {
	key := CacheKey(sourceID, rng)
	rows, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("row cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return rows, nil
	}

	rows, err = c.next.FetchRows(ctx, sourceID, rng)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, rows); err != nil {
		c.logger.Warn("row cache write failed", zap.String("key", key), zap.Error(err))
	}
	return rows, nil
}

// Invalidate 清除指定范围的缓存
func (c *Cached) Invalidate(ctx context.Context, sourceID string, ranges ...string) error {
	keys := make([]string, len(ranges))
	for i, rng := range ranges {
		keys[i] = CacheKey(sourceID, rng)
	}
	return c.cache.Delete(ctx, keys...)
}

type memoryEntry struct {
	rows    [][]string
	expires time.Time
}

// MemoryCache 进程内 TTL 缓存
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([][]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok || !m.now().Before(e.expires) {
		return nil, false, nil
	}
	return e.rows, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{rows: rows, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([][]string, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, [][]string) error { return nil }
func (NopCache) Delete(context.Context, ...string) error { return nil }
