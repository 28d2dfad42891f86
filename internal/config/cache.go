package config

import "time"

// CacheConfig defines settings for the read-side response cache.  Only
// availability and calendar GET responses are cached; results are
// advisory anyway (creation re-validates under the dock lock), so a
// short TTL keeps the grid fresh without hammering the database.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 15*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "cache"),
    }
}
