package domain

import "time"

// BuildInfo records the outcome of the most recent build for a cache key.
// It is advisory metadata kept next to the project; the cache itself is
// indexed purely by the filesystem listing of the cache root.
type BuildInfo struct {
	CacheKey   string        `json:"cache_key,omitzero"`
	TagName    string        `json:"tag_name,omitzero"`
	OutputHash string        `json:"output_hash,omitzero"`
	Duration   time.Duration `json:"duration,omitzero"`
	Timestamp  time.Time     `json:"timestamp,omitzero"`
	FromCache  bool          `json:"from_cache,omitzero"`
}
