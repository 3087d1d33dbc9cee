package profanity

import "profanity/internal/config"

// Config is the detector's configuration snapshot (spec.md §3). It is a
// plain alias of internal/config.Config so that callers needing the
// ambient YAML/env loader (LoadConfig) and callers constructing a
// Detector directly share one type.
type Config = config.Config

// DefaultConfig returns the configuration defaults mandated by spec.md
// §6, independently allocated so the caller can freely mutate the
// result (spec.md §9's "frozen defaults" requirement).
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig layers an optional YAML file and PROFANITY_-prefixed
// environment variables on top of DefaultConfig, per SPEC_FULL.md's
// ambient configuration-loading convention. Pass an empty path to only
// apply environment overrides.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}
