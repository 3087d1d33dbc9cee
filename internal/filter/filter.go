// Package filter implements the exact multi-pattern matching backends
// (spec.md §4.2, §4.3): an interchangeable Trie or Aho-Corasick automaton
// operating on already-normalized, code-point-indexed text.
package filter

import "errors"

// ErrUnbuiltMatcher is the panic value when an Aho-Corasick automaton's
// FindAll is called before Finalize (spec.md §4.8's "find_all is legal
// only after build" invariant). A programmer error, not a recoverable
// runtime condition, so it panics rather than returning as an error.
var ErrUnbuiltMatcher = errors.New("filter: matcher consulted before build")

// Match is a single exact-match hit in code-point coordinates of the text
// passed to FindAll. The match covers runes [Start, Start+Length): Start
// is inclusive and Start+Length is exclusive.
type Match struct {
	Start  int
	Length int
}

// Algorithm names the exact-matcher backend, per spec.md §3's
// detection.algorithm field.
type Algorithm string

const (
	AlgorithmTrie Algorithm = "trie"
	AlgorithmAho  Algorithm = "aho"
)

// Matcher is the tagged-variant capability spec.md §9 calls for: a single
// dispatch point over the Trie/Aho-Corasick backends.
type Matcher interface {
	// InsertAll loads the full pattern set. Matchers are rebuilt wholesale
	// on every mutation rather than incrementally updated, per spec.md
	// §3's "replaced, not mutated" matcher lifecycle.
	InsertAll(words []string)
	// Finalize prepares the matcher for searching (a no-op for Trie; for
	// Aho-Corasick it builds the failure links). FindAll before Finalize
	// is a programmer error.
	Finalize()
	// FindAll returns every match of a loaded word in text, in code-point
	// coordinates, honoring wholeWordsOnly boundary checks and treating
	// any rune in separators as transparent to the match.
	FindAll(text []rune, wholeWordsOnly bool, separators map[rune]bool) []Match
}

// New constructs the matcher backend named by alg.
func New(alg Algorithm) Matcher {
	switch alg {
	case AlgorithmAho:
		return NewAhoCorasick()
	default:
		return NewTrie()
	}
}
