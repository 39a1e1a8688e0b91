package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"bluemoon-http-service/internal/domain/services"
	"bluemoon-http-service/pkg/logger"
)

const cacheKeyPrefix = "cache:"

// CacheStore keeps cached response bodies
type CacheStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte, ttl time.Duration)
	PurgePrefix(prefix string) int
	Stats() map[string]interface{}
}

type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

// memoryStore is the process-local store used when Redis is disabled
type memoryStore struct {
	sync.RWMutex
	items map[string]cacheEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: make(map[string]cacheEntry)}
}

func (m *memoryStore) Get(key string) ([]byte, bool) {
	m.RLock()
	entry, found := m.items[key]
	m.RUnlock()
	if !found || !entry.Expiration.After(time.Now()) {
		return nil, false
	}
	return entry.Content, true
}

func (m *memoryStore) Set(key string, body []byte, ttl time.Duration) {
	m.Lock()
	m.items[key] = cacheEntry{Content: body, Expiration: time.Now().Add(ttl)}
	m.Unlock()
}

func (m *memoryStore) PurgePrefix(prefix string) int {
	m.Lock()
	defer m.Unlock()
	n := 0
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
			n++
		}
	}
	return n
}

func (m *memoryStore) Stats() map[string]interface{} {
	m.RLock()
	defer m.RUnlock()

	items := make([]map[string]interface{}, 0, len(m.items))
	for key, entry := range m.items {
		items = append(items, map[string]interface{}{
			"key":        key,
			"size":       len(entry.Content),
			"expiration": entry.Expiration.Format(time.RFC3339),
			"expired":    entry.Expiration.Before(time.Now()),
		})
	}
	return map[string]interface{}{
		"backend":     "memory",
		"total_items": len(m.items),
		"items":       items,
	}
}

func (m *memoryStore) cleanExpired() {
	now := time.Now()
	m.Lock()
	defer m.Unlock()
	for key, entry := range m.items {
		if entry.Expiration.Before(now) {
			delete(m.items, key)
		}
	}
}

// redisStore shares cached responses between instances
type redisStore struct {
	redis services.InterfaceRedisService
}

func (r *redisStore) Get(key string) ([]byte, bool) {
	body, err := r.redis.GetRaw(key)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (r *redisStore) Set(key string, body []byte, ttl time.Duration) {
	if err := r.redis.SetRaw(key, body, ttl); err != nil {
		logger.Warning("cache set %s: %v", key, err)
	}
}

func (r *redisStore) PurgePrefix(prefix string) int {
	n, err := r.redis.DeleteByPrefix(prefix)
	if err != nil {
		logger.Warning("cache purge %s: %v", prefix, err)
	}
	return n
}

func (r *redisStore) Stats() map[string]interface{} {
	return map[string]interface{}{"backend": "redis"}
}

var (
	defaultMemoryStore = newMemoryStore()
	store              CacheStore = defaultMemoryStore
	storeMu            sync.RWMutex
)

// UseRedisCache moves the response cache to Redis; a nil service keeps the memory store
func UseRedisCache(redis services.InterfaceRedisService) {
	storeMu.Lock()
	defer storeMu.Unlock()
	if redis == nil {
		store = defaultMemoryStore
		return
	}
	store = &redisStore{redis: redis}
}

func currentStore() CacheStore {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}

// CacheConfig configures Cache
type CacheConfig struct {
	Expiration time.Duration
	Methods    []string
	KeyFunc    func(*gin.Context) string
}

// DefaultCacheConfig caches GET responses for five minutes
var DefaultCacheConfig = CacheConfig{
	Expiration: 5 * time.Minute,
	Methods:    []string{http.MethodGet},
	KeyFunc:    defaultKeyFunc,
}

// CacheKey builds the key for a path and its query. Keys keep the path readable
// so PurgeCacheByPrefix can drop every cached page of one resource.
func CacheKey(path string, query map[string][]string) string {
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var queryString strings.Builder
	for _, key := range keys {
		values := append([]string(nil), query[key]...)
		sort.Strings(values)
		for _, value := range values {
			queryString.WriteString(key + "=" + value + "&")
		}
	}

	hasher := md5.New()
	hasher.Write([]byte(queryString.String()))
	return cacheKeyPrefix + path + "?" + hex.EncodeToString(hasher.Sum(nil))
}

func defaultKeyFunc(c *gin.Context) string {
	return CacheKey(c.Request.URL.Path, c.Request.URL.Query())
}

// Cache serves repeated GETs from the store. Only 200 responses are stored.
func Cache(config ...CacheConfig) gin.HandlerFunc {
	cfg := DefaultCacheConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultCacheConfig.Methods
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		methodAllowed := false
		for _, method := range cfg.Methods {
			if c.Request.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			c.Next()
			return
		}

		s := currentStore()
		key := cfg.KeyFunc(c)
		if content, found := s.Get(key); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			s.Set(key, writer.body.Bytes(), cfg.Expiration)
		}
	}
}

// PurgeOnWrite drops cached pages under prefix after a successful non-GET request
func PurgeOnWrite(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Request.Method == http.MethodGet {
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			PurgeCacheByPrefix(prefix)
		}
	}
}

// PurgeCache drops every cached response
func PurgeCache() int {
	return currentStore().PurgePrefix(cacheKeyPrefix)
}

// PurgeCacheByPrefix drops cached responses whose path starts with pathPrefix
func PurgeCacheByPrefix(pathPrefix string) int {
	return currentStore().PurgePrefix(cacheKeyPrefix + pathPrefix)
}

// CacheStats describes the active store
func CacheStats() map[string]interface{} {
	return currentStore().Stats()
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func init() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			defaultMemoryStore.cleanExpired()
		}
	}()
}
