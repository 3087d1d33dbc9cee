package profanity

import (
	"profanity/internal/normalize"
	"profanity/internal/phrase"
)

// phraseStore keeps the raw phrase list alongside its compiled trie,
// rebuilding the trie wholesale on every mutation (spec.md §3's "Phrase
// store: a set of token sequences plus a rebuilt token-keyed tree").
type phraseStore struct {
	raw  [][]string
	trie *phrase.Trie
}

func newPhraseStore() *phraseStore {
	return &phraseStore{trie: phrase.NewTrie()}
}

// add tokenizes and normalizes text, then inserts it as a phrase. A
// phrase with no word tokens is silently dropped (spec.md §7: malformed
// entries are dropped, not rejected).
func (s *phraseStore) add(text string, opts normalize.Options) {
	tokens := tokensOf(text, opts)
	if len(tokens) == 0 {
		return
	}
	s.raw = append(s.raw, tokens)
	s.trie.InsertAll(s.raw)
}

// remove drops every stored phrase equal to text's token sequence and
// rebuilds the trie. A no-op if the phrase was never added.
func (s *phraseStore) remove(text string, opts normalize.Options) {
	tokens := tokensOf(text, opts)
	filtered := s.raw[:0]
	for _, p := range s.raw {
		if !equalTokens(p, tokens) {
			filtered = append(filtered, p)
		}
	}
	s.raw = filtered
	s.trie.InsertAll(s.raw)
}

func (s *phraseStore) empty() bool {
	return len(s.raw) == 0
}

func tokensOf(text string, opts normalize.Options) []string {
	normalized := []rune(normalize.Normalize(text, opts))
	toks := phrase.Tokenize(normalized)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
