// Package registry implements the per-language word-set and compiled-
// matcher store from spec.md §4.6: the registry owns every language's
// raw word set and its exactly-one compiled matcher, replacing rather
// than mutating matchers on any change.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"profanity/internal/bloom"
	"profanity/internal/filter"
	"profanity/internal/normalize"
)

// PackTable is the external, read-only collaborator spec.md §6 defines:
// a mapping of language code to its raw (un-normalized) word list. Out of
// scope for this repository; only the interface is defined here.
type PackTable interface {
	Words(code string) []string
	AllCodes() []string
}

// InflectionOptions controls the suffix-expansion policy of spec.md §4.6.
type InflectionOptions struct {
	Enabled  bool
	Suffixes []string
}

// Entry is one language's word set plus its exclusively-owned compiled
// matcher (spec.md §3's "Language entry").
type Entry struct {
	Code    string
	Words   map[string]bool
	Matcher filter.Matcher
	bloom   *bloom.Filter
}

// Registry holds every active language's Entry (spec.md §4.6).
type Registry struct {
	mu sync.RWMutex

	entries        map[string]*Entry
	active         []string // preserves enabled-order, spec.md §4.7's language priority
	algorithm      filter.Algorithm
	normalize      normalize.Options
	inflection     InflectionOptions
	packTable      PackTable
	usePrefilter   bool
	separators     map[rune]bool
	wholeWordsOnly bool

	log *log.Helper
}

// New creates an empty Registry. packTable may be nil, in which case
// Load only ever produces empty entries (spec.md §7: "unknown language
// codes produce empty language entries silently").
func New(packTable PackTable, alg filter.Algorithm, normOpts normalize.Options, infl InflectionOptions, logger log.Logger) *Registry {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Registry{
		entries:    make(map[string]*Entry),
		algorithm:  alg,
		normalize:  normOpts,
		inflection: infl,
		packTable:  packTable,
		log:        log.NewHelper(logger),
	}
}

// SetSeparators records the active ignore_separators set. It only affects
// whether the optional Bloom pre-filter (WithPrefilter) may safely engage
// (see PreFilterReject).
func (r *Registry) SetSeparators(separators map[rune]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.separators = separators
}

// SetWholeWordsOnly records the active detection.whole_words_only flag.
// Like SetSeparators, it only affects whether the Bloom pre-filter may
// safely engage (see PreFilterReject): whole-token bloom membership is
// only a sound proxy for "the exact matcher would find nothing" when
// whole_words_only holds, since otherwise a language word may match as a
// true substring of a larger token (e.g. "ass" inside "passage") that
// would never itself be a member of the bloom filter's word set.
func (r *Registry) SetWholeWordsOnly(wholeWordsOnly bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wholeWordsOnly = wholeWordsOnly
}

// WithPrefilter enables the optional Bloom-filter pre-check described in
// SPEC_FULL.md's "new components" section. It is always safe to leave
// disabled; enabling it only ever skips work, never correctness, because
// PreFilterReject refuses to engage whenever ignore_separators is
// non-empty (a separator-obfuscated word would not appear as a bloom-
// matching token) or whenever whole_words_only is off (a word can still
// match as a substring of a token the bloom filter has never seen).
func (r *Registry) WithPrefilter(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usePrefilter = enabled
	for _, entry := range r.entries {
		r.rebuild(entry)
	}
}

// Active returns the ordered list of currently active language codes.
func (r *Registry) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.active...)
}

// Entry returns the language entry for code, if loaded.
func (r *Registry) Entry(code string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[code]
	return e, ok
}

// Load populates entries for codes not already present, pulling raw words
// from the pack table, normalizing and deduplicating them, and building a
// matcher. Loading an unknown code produces an empty entry without error
// (spec.md §7). Already-loaded codes are left untouched.
func (r *Registry) Load(codes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, code := range codes {
		if _, ok := r.entries[code]; ok {
			continue
		}
		var raw []string
		if r.packTable != nil {
			raw = r.packTable.Words(code)
		}
		entry := &Entry{Code: code, Words: make(map[string]bool)}
		for _, w := range raw {
			n := normalize.Normalize(w, r.normalize)
			if n == "" {
				continue
			}
			entry.Words[n] = true
		}
		r.entries[code] = entry
		r.rebuild(entry)
		r.log.Infof("registry: loaded language %q with %d words", code, len(entry.Words))
	}
}

// SetActive replaces the active language list, loading any code not yet
// populated, per spec.md §4.6's set_active.
func (r *Registry) SetActive(codes []string) {
	r.Load(codes)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = append([]string(nil), codes...)
}

// AddWord adds word to the given language's set (after normalization and
// inflection/eszett expansion) and rebuilds that language's matcher.
// Empty-after-normalization words are silently dropped (spec.md §7).
func (r *Registry) AddWord(word, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[code]
	if !ok {
		entry = &Entry{Code: code, Words: make(map[string]bool)}
		r.entries[code] = entry
	}

	n := normalize.Normalize(word, r.normalize)
	if n == "" {
		return
	}
	entry.Words[n] = true
	r.rebuild(entry)
	r.log.Infof("registry: added word to %q (set size %d)", code, len(entry.Words))
}

// RemoveWord removes word (after normalization) from the given language's
// set and rebuilds its matcher.
func (r *Registry) RemoveWord(word, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[code]
	if !ok {
		return
	}
	n := normalize.Normalize(word, r.normalize)
	delete(entry.Words, n)
	r.rebuild(entry)
	r.log.Infof("registry: removed word from %q (set size %d)", code, len(entry.Words))
}

// SetAlgorithm rebuilds every loaded language's matcher under alg,
// dropping the now-unused matcher kind (spec.md §4.6).
func (r *Registry) SetAlgorithm(alg filter.Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.algorithm = alg
	for _, entry := range r.entries {
		r.rebuild(entry)
	}
	r.log.Infof("registry: switched algorithm to %q", alg)
}

// rebuild recompiles entry's matcher (and, if enabled, its Bloom
// pre-filter) from its current word set. Must be called with r.mu held.
func (r *Registry) rebuild(entry *Entry) {
	words := r.expandedWords(entry)

	m := filter.New(r.algorithm)
	m.InsertAll(words)
	m.Finalize()
	entry.Matcher = m

	if r.usePrefilter {
		f := bloom.NewInMemory(1<<20, 5)
		ctx := context.Background()
		sound := true
		for _, w := range words {
			// PreFilterReject checks the text's word tokens, so index the
			// word tokens of each form rather than the whole form.
			toks := strings.FieldsFunc(w, func(c rune) bool { return !normalize.IsWordChar(c) })
			if len(toks) == 0 {
				sound = false
			}
			for _, tok := range toks {
				_ = f.Add(ctx, []byte(tok))
			}
		}
		if sound {
			entry.bloom = f
		} else {
			entry.bloom = nil
		}
	} else {
		entry.bloom = nil
	}
}

// expandedWords builds the full insertion list for entry's matcher:
// each normalized word, its German ß->ss expansion if any, and every
// configured inflection suffix of both forms when enabled.
func (r *Registry) expandedWords(entry *Entry) []string {
	var out []string
	for w := range entry.Words {
		forms := []string{w}
		if expanded, ok := normalize.ExpandEszett(w); ok {
			forms = append(forms, expanded)
		}

		if r.inflection.Enabled {
			base := append([]string(nil), forms...)
			for _, f := range base {
				for _, suf := range r.inflection.Suffixes {
					forms = append(forms, f+suf)
				}
			}
		}
		out = append(out, forms...)
	}
	return out
}

// PreFilterReject reports whether the Bloom pre-filter is confident that
// none of text's tokens is a word token of any form in code's word set,
// letting the caller skip the exact matcher entirely. It always returns
// false (never rejects) unless the prefilter is enabled for this entry, no
// separators are configured, and whole_words_only is on. An entry holding
// a form with no word characters at all gets no filter, so it is never
// rejected.
//
// Both guards exist because whole-token bloom membership is only a sound
// stand-in for "the exact matcher would find nothing": a separator-
// obfuscated word would not survive tokenization and could cause a false
// "definitely absent" answer, and with whole_words_only off the exact
// matcher is specified to report a word found anywhere inside a larger
// token (spec.md §4.2/§4.3's substring semantics), not just as a
// stand-alone token -- e.g. language word "ass" inside input token
// "passage" would never itself be a bloom member, yet detect must still
// report it. Only when whole_words_only holds does "none of this text's
// whole tokens are known words" actually imply "the exact matcher finds
// nothing here".
func (r *Registry) PreFilterReject(code string, tokens []string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.usePrefilter || len(r.separators) > 0 || !r.wholeWordsOnly {
		return false
	}
	entry, ok := r.entries[code]
	if !ok || entry.bloom == nil {
		return false
	}

	ctx := context.Background()
	for _, tok := range tokens {
		if ok, _ := entry.bloom.MayContain(ctx, []byte(tok)); ok {
			return false
		}
	}
	return true
}
