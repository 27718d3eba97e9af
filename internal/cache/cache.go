// Package cache stores analysis results keyed by the content of the inputs,
// in memory and optionally in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	DefaultMaxEntries      = 1000
	DefaultCleanupInterval = 5 * time.Minute
	keyPrefix              = "rm:"
)

// Options configures a Cache
type Options struct {
	RedisURL        string // empty disables L2
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// Cache is a 2-tier result cache: L1 in-memory + L2 Redis.
// L1 is lost on restart, L2 survives restarts.
type Cache struct {
	l1              sync.Map      // key → *entry
	rdb             *redis.Client // nil if Redis unavailable
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	logger          *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Stats are the hit/miss counters of a Cache
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Redis  bool  `json:"redis"`
}

// New sets up the cache and starts the L1 cleanup loop. An unreachable or
// invalid Redis URL disables L2 with a warning instead of failing.
func New(ctx context.Context, opts Options, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.MaxEntries == 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = DefaultCleanupInterval
	}

	c := &Cache{
		ttl:             opts.TTL,
		maxEntries:      opts.MaxEntries,
		cleanupInterval: opts.CleanupInterval,
		logger:          logger,
		stop:            make(chan struct{}),
	}

	if opts.RedisURL != "" {
		redisOpts, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			logger.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		} else {
			rdb := redis.NewClient(redisOpts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				logger.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
				rdb.Close()
			} else {
				c.rdb = rdb
				logger.Info("cache: L2 redis connected", slog.String("addr", redisOpts.Addr))
			}
		}
	}

	logger.Info("cache: initialized", slog.Duration("ttl", c.ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", c.maxEntries))

	go c.cleanupLoop()
	return c
}

// Close stops the cleanup loop and closes the Redis client
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Key builds a deterministic cache key from the analysis inputs. Variant
// distinguishes engine configurations that would score the same texts
// differently.
func Key(variant, resumeText, jobText string) string {
	joined := strings.Join([]string{variant, resumeText, jobText}, "\x00")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}

// Get tries L1, then L2. On L2 hit, populates L1.
func (c *Cache) Get(ctx context.Context, key string) (*types.AnalysisResult, bool) {
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if time.Now().Before(e.expiresAt) {
			var out types.AnalysisResult
			if json.Unmarshal(e.data, &out) == nil {
				c.logger.Debug("cache: L1 hit", slog.String("key", key))
				c.hits.Add(1)
				return &out, true
			}
		}
		c.l1.Delete(key) // expired or corrupt
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var out types.AnalysisResult
			if json.Unmarshal(data, &out) == nil {
				c.logger.Debug("cache: L2 hit", slog.String("key", key))
				c.hits.Add(1)
				c.storeL1(key, data)
				return &out, true
			}
		} else if err != redis.Nil {
			c.logger.Debug("cache: L2 get failed", slog.Any("error", err))
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores result in both L1 and L2.
func (c *Cache) Set(ctx context.Context, key string, result *types.AnalysisResult) {
	if result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Debug("cache: marshal failed", slog.Any("error", err))
		return
	}

	c.evictIfNeeded()
	c.storeL1(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// Stats returns current hit/miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Redis: c.rdb != nil}
}

func (c *Cache) storeL1(key string, data []byte) {
	c.l1.Store(key, &entry{data: data, expiresAt: time.Now().Add(c.ttl)})
}

func (c *Cache) size() int {
	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// evictIfNeeded removes entries when L1 is at maxEntries.
// Expired entries go first, then the oldest.
func (c *Cache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := c.size()
	if count < c.maxEntries {
		return
	}

	now := time.Now()
	c.l1.Range(func(key, val any) bool {
		if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return count >= c.maxEntries
	})

	for count >= c.maxEntries {
		var oldestKey any
		oldestAt := now.Add(c.ttl + time.Hour)
		c.l1.Range(func(key, val any) bool {
			// earlier expiry means older entry, since expiry = stored + ttl
			if e, ok := val.(*entry); ok && e.expiresAt.Before(oldestAt) {
				oldestKey = key
				oldestAt = e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			break
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

// cleanupLoop periodically removes expired L1 entries.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.l1.Range(func(key, val any) bool {
				if e, ok := val.(*entry); ok && now.After(e.expiresAt) {
					c.l1.Delete(key)
				}
				return true
			})
		}
	}
}
