package config

import "time"

// HoldConfig controls the table-hold core.  Store selects where hold
// buckets live: "memory" binds holds to one process and is the default
// for a single-instance deployment; "redis" shares them across
// instances (required whenever more than one API process serves the
// same bars, otherwise the single-holder rule only binds customers that
// happen to hit the same process).
type HoldConfig struct {
	TTL           time.Duration // hold lifetime (HOLD_TTL)
	StrictRelease bool          // error on non-matching release (HOLD_STRICT_RELEASE)
	Store         string        // "memory" or "redis" (HOLD_STORE)
}

// LoadHoldConfig reads the hold settings from environment variables.
// Defaults: 5 minute TTL, lenient release, in-process store.
func LoadHoldConfig() HoldConfig {
	return HoldConfig{
		TTL:           envDur("HOLD_TTL", 5*time.Minute),
		StrictRelease: envBool("HOLD_STRICT_RELEASE", false),
		Store:         getenv("HOLD_STORE", "memory"),
	}
}

func envDur(key string, def time.Duration) time.Duration {
	if v := getenv(key, ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
