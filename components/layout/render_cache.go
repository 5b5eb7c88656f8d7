package layout

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered preview HTML so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// PreviewCache is an in-memory TTL cache for rendered previews.
type PreviewCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedPreview
}

type cachedPreview struct {
	html    string
	expires time.Time
}

// NewPreviewCache builds a cache with the provided TTL.
func NewPreviewCache(ttl time.Duration) *PreviewCache {
	return &PreviewCache{
		ttl:     ttl,
		entries: make(map[string]cachedPreview),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *PreviewCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

func (c *PreviewCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return "", false
	}
	return entry.html, true
}

func (c *PreviewCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedPreview{
		html:    html,
		expires: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// settingsHash returns a deterministic hash for the widget settings.
func settingsHash(settings map[string]any) string {
	if len(settings) == 0 {
		return "empty"
	}
	b, err := json.Marshal(settings)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
