// Package denylist holds the fixed set of destination URLs whose events are
// constructed but never emitted. Used to silence known noisy internal auth
// calls.
package denylist

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Patterns is the raw YAML shape of a deny-list file.
type Patterns struct {
	URLs []string `yaml:"urls"`
}

// Denylist answers exact-URL suppression checks. Safe for concurrent reads;
// Replace swaps the whole set atomically for hot-reload.
type Denylist struct {
	mu   sync.RWMutex
	urls map[string]struct{}
	raw  Patterns
}

// New creates a Denylist from raw patterns.
func New(p Patterns) *Denylist {
	d := &Denylist{}
	d.Replace(p)
	return d
}

// NewDefault creates a Denylist with the hardcoded default URLs.
func NewDefault() *Denylist {
	return New(DefaultPatterns)
}

// Load reads a deny-list from a YAML file. Falls back to defaults if the
// path is empty or the file doesn't exist.
func Load(path string) (*Denylist, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return NewDefault(), nil
		}
		path = filepath.Join(home, ".spanwatch", "denylist.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, err
	}

	var p Patterns
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return New(p), nil
}

// Suppressed reports whether events for url must not be emitted. Matching is
// exact: suppression exists to silence specific endpoints, not URL classes.
func (d *Denylist) Suppressed(url string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.urls[url]
	return ok
}

// Replace swaps the suppression set.
func (d *Denylist) Replace(p Patterns) {
	urls := make(map[string]struct{}, len(p.URLs))
	for _, u := range p.URLs {
		urls[u] = struct{}{}
	}
	d.mu.Lock()
	d.raw = p
	d.urls = urls
	d.mu.Unlock()
}

// ToMap returns the raw patterns for serialization.
func (d *Denylist) ToMap() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return map[string]any{"urls": d.raw.URLs}
}
