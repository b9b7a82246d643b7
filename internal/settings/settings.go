// Package settings exposes DB-backed runtime configuration through an
// in-memory snapshot, so hot paths never query the settings table.
package settings

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// DB config keys and defaults for settings.
const (
	// RateLimitMaxKey overrides how many inquiries an IP may submit per window.
	RateLimitMaxKey = "RATE_LIMIT_MAX_SUBMISSIONS"
	// RateLimitWindowDaysKey overrides the trailing window length in days.
	RateLimitWindowDaysKey = "RATE_LIMIT_WINDOW_DAYS"
)

// snapshot holds the in-memory settings values.
type snapshot struct {
	updatedAt time.Time
	values    map[string]json.RawMessage
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

// init seeds the global snapshot.
func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// Store replaces the in-memory snapshot of DB-backed settings.
func Store(updatedAt time.Time, values map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if v == nil {
			next[key] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		next[key] = copied
	}

	globalSnapshot.Store(snapshot{
		updatedAt: updatedAt.UTC(),
		values:    next,
	})
}

// UpdatedAt returns the last update timestamp of the snapshot.
func UpdatedAt() time.Time {
	return load().updatedAt
}

// Value returns a copy of the raw value for a key.
func Value(key string) (json.RawMessage, bool) {
	cfg := load()
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	val, ok := cfg.values[key]
	if !ok {
		return nil, false
	}
	if val == nil {
		return nil, true
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// IntValue decodes an integer setting, falling back to def when the key is
// absent or not a positive integer.
func IntValue(key string, def int) int {
	raw, ok := Value(key)
	if !ok || len(raw) == 0 {
		return def
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil || n <= 0 {
		return def
	}
	return n
}

// load returns the current snapshot with safe defaults.
func load() snapshot {
	v := globalSnapshot.Load()
	cfg, ok := v.(snapshot)
	if !ok {
		return snapshot{values: map[string]json.RawMessage{}}
	}
	if cfg.values == nil {
		return snapshot{updatedAt: cfg.updatedAt, values: map[string]json.RawMessage{}}
	}
	return cfg
}
