package profanity

import (
	"errors"

	"profanity/internal/config"
	"profanity/internal/filter"
)

// Sentinel errors surfaced to callers, per spec.md §7's error taxonomy:
// configuration problems are rejected by the constructor (ErrInvalidConfig)
// or a mutator (ErrUnknownAlgorithm from SetAlgorithm); ErrUnbuiltMatcher
// marks the "internal invariant violated" category, which fails loudly
// (a panic) rather than being absorbed silently.
var (
	// ErrInvalidConfig is returned by New or a mutator when the supplied
	// configuration fails validation. Re-exported from internal/config,
	// whose Validate is what actually produces the wrapped error, so
	// errors.Is(err, ErrInvalidConfig) works against this package's own
	// public New/mutator return values.
	ErrInvalidConfig = config.ErrInvalidConfig

	// ErrUnknownAlgorithm is returned by SetAlgorithm for any value other
	// than "trie" or "aho".
	ErrUnknownAlgorithm = errors.New("profanity: unknown algorithm")

	// ErrUnbuiltMatcher is the panic value an internal Aho-Corasick
	// automaton raises if ever consulted before being built; re-exported
	// from internal/filter so a caller recovering from a panic in this
	// library can match on one stable sentinel.
	ErrUnbuiltMatcher = filter.ErrUnbuiltMatcher
)
