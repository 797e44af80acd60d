package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// CacheKey derives the audio cache key from the utterance and voice.
// Text is normalized (trimmed, lowercased, whitespace collapsed) so that
// cosmetic differences in phrasing hit the same entry.
func CacheKey(text, voiceID string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized + "|" + voiceID))
	return hex.EncodeToString(sum[:])
}

type cacheEntry struct {
	audio    []byte
	storedAt time.Time
}

// audioCache is a bounded TTL cache of synthesized audio. When full, the
// oldest entry by insertion time is evicted first.
type audioCache struct {
	mu       sync.Mutex
	entries  map[string]cacheEntry
	ttl      time.Duration
	maxItems int
	now      func() time.Time
}

func newAudioCache(ttl time.Duration, maxItems int) *audioCache {
	return &audioCache{
		entries:  make(map[string]cacheEntry),
		ttl:      ttl,
		maxItems: maxItems,
		now:      time.Now,
	}
}

func (c *audioCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.audio, true
}

func (c *audioCache) Set(key string, audio []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()

	// Drop expired entries before considering eviction.
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxItems {
		c.evictOldest()
	}
	c.entries[key] = cacheEntry{audio: audio, storedAt: now}
}

func (c *audioCache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *audioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
