// Package profanity implements the matching core of spec.md: a
// normalization pipeline, interchangeable Trie/Aho-Corasick exact
// matcher, token-based phrase matcher, and approximate fallback
// scanner, sequenced by a single-threaded, synchronous orchestrator.
package profanity

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"profanity/internal/cache"
	"profanity/internal/filter"
	"profanity/internal/fuzzy"
	"profanity/internal/langdetect"
	"profanity/internal/normalize"
	"profanity/internal/phrase"
	"profanity/internal/registry"
)

// Detector is the library's entry point. A single instance is
// synchronous and single-threaded per call: concurrent Detect/Sanitize
// calls with no concurrent mutator in flight are safe and deterministic
// (spec.md §5); mutators take an exclusive lock and rebuild state before
// returning.
type Detector struct {
	mu sync.RWMutex

	cfg        Config
	normOpts   normalize.Options
	separators map[rune]bool
	allowlist  map[string]bool

	packTable registry.PackTable
	registry  *registry.Registry
	phrases   *phraseStore
	cache     *cache.Cache[DetectionResult]

	log *log.Helper
}

// New constructs a Detector from an optional configuration override. A
// nil override yields DefaultConfig(). The configuration is validated
// and cloned so the caller's struct (or the shared default) can never be
// mutated by this instance (spec.md §9).
func New(override *Config) (*Detector, error) {
	return NewWithPackTable(override, nil)
}

// NewWithPackTable is New, additionally wiring an external word-list
// collaborator (spec.md §6's "pack table interface"). packTable may be
// nil, in which case every language starts (and stays, absent add_word
// calls) empty.
func NewWithPackTable(override *Config, packTable registry.PackTable) (*Detector, error) {
	cfg := DefaultConfig()
	if override != nil {
		cfg = override.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	normOpts := normalizeOptionsFrom(cfg)
	separators := separatorSetFrom(cfg.Detection.IgnoreSeparators)
	allowlist := make(map[string]bool, len(cfg.Detection.Allowlist))
	for _, w := range cfg.Detection.Allowlist {
		if n := normalize.Normalize(w, normOpts); n != "" {
			allowlist[n] = true
		}
	}

	infl := registry.InflectionOptions{
		Enabled:  cfg.Detection.EnableInflections,
		Suffixes: append([]string(nil), cfg.Detection.InflectionSuffixes...),
	}

	reg := registry.New(packTable, filter.Algorithm(cfg.Detection.Algorithm), normOpts, infl, log.DefaultLogger)
	reg.SetSeparators(separators)
	reg.SetWholeWordsOnly(cfg.Detection.WholeWordsOnly)
	reg.SetActive(cfg.Languages.Enabled)

	d := &Detector{
		cfg:        cfg,
		normOpts:   normOpts,
		separators: separators,
		allowlist:  allowlist,
		packTable:  packTable,
		registry:   reg,
		phrases:    newPhraseStore(),
		cache:      cache.New[DetectionResult](512),
		log:        log.NewHelper(log.DefaultLogger),
	}

	for _, w := range cfg.Detection.CustomWords {
		d.registry.AddWord(w, cfg.Languages.Fallback)
	}

	return d, nil
}

func normalizeOptionsFrom(cfg Config) normalize.Options {
	return normalize.Options{
		CaseSensitive:     cfg.Detection.CaseSensitive,
		StripInvisible:    cfg.Detection.StripInvisible,
		StripDiacritics:   cfg.Detection.StripDiacritics,
		ConfusableMapping: cfg.Detection.ConfusableMapping,
		UseCompatForm:     cfg.Detection.UseCompatForm,
		LengthPreserving:  cfg.Detection.LengthPreserving,
	}
}

func separatorSetFrom(seps []string) map[rune]bool {
	out := make(map[rune]bool, len(seps))
	for _, s := range seps {
		for _, r := range s {
			out[r] = true
		}
	}
	return out
}

// Detect runs the full pipeline of spec.md §2 against text and returns
// every match span it finds, in code-point positions of the normalized
// text.
func (d *Detector) Detect(text string) (DetectionResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	normalized := normalize.Normalize(text, d.normOpts)
	key := cache.Key("detect", normalized)
	if cached, ok := d.cache.Get(key); ok {
		return cached, nil
	}

	runes := []rune(normalized)
	result := d.detectLocked(runes)
	d.cache.Put(key, result)
	return result, nil
}

func (d *Detector) detectLocked(runes []rune) DetectionResult {
	candidates := d.resolveCandidates(runes)

	// Exact stage (inflected forms are already compiled into each
	// language's matcher by the registry, so no separate inflection
	// re-scan is needed here).
	var tokens []string
	tokensComputed := false
	for _, code := range candidates {
		entry, ok := d.registry.Entry(code)
		if !ok || entry.Matcher == nil {
			continue
		}
		if !tokensComputed {
			tokens = phraseTokenTexts(phrase.Tokenize(runes))
			tokensComputed = true
		}
		if d.registry.PreFilterReject(code, tokens) {
			continue
		}
		matches := entry.Matcher.FindAll(runes, d.cfg.Detection.WholeWordsOnly, d.separators)
		spans := d.toSpans(matches, runes, code)
		if len(spans) > 0 {
			return DetectionResult{HasProfanity: true, Matches: spans}
		}
	}

	// Phrase stage: the phrase store is shared across languages.
	if !d.phrases.empty() {
		tokens := phrase.Tokenize(runes)
		stopwords := make(map[string]bool, len(d.cfg.Detection.PhraseStopwords))
		for _, w := range d.cfg.Detection.PhraseStopwords {
			stopwords[normalize.Normalize(w, d.normOpts)] = true
		}
		phraseMatches := d.phrases.trie.FindAll(tokens, stopwords, d.cfg.Detection.PhraseMaxSkips)
		var spans []Span
		for _, m := range phraseMatches {
			word := string(runes[m.Start:m.End])
			if d.allowlist[word] {
				continue
			}
			spans = append(spans, Span{Word: word, StartIndex: m.Start, Length: m.End - m.Start, LanguageCode: d.cfg.Languages.Fallback})
		}
		if len(spans) > 0 {
			return DetectionResult{HasProfanity: true, Matches: spans}
		}
	}

	// Approximate stage: first language with a positive word wins.
	if d.cfg.Detection.MaxEditDistance > 0 {
		opts := fuzzy.Options{
			MaxEditDistance:   d.cfg.Detection.MaxEditDistance,
			TokenBoundedFuzzy: d.cfg.Detection.TokenBoundedFuzzy,
			WholeWordsOnly:    d.cfg.Detection.WholeWordsOnly,
		}
		for _, code := range candidates {
			entry, ok := d.registry.Entry(code)
			if !ok || len(entry.Words) == 0 {
				continue
			}
			words := make([]string, 0, len(entry.Words))
			for w := range entry.Words {
				words = append(words, w)
			}
			// entry.Words is a map; range order is randomized per
			// iteration in Go. Sort for a stable scan order so repeated
			// calls against the same uncached text can't pick a
			// different "first matching word" (spec.md §5: concurrent
			// Detect calls must observe identical results).
			sort.Strings(words)
			if m, found := fuzzy.Scan(runes, words, opts); found {
				word := string(runes[m.Start : m.Start+m.Length])
				if d.allowlist[word] {
					continue
				}
				span := Span{Word: word, StartIndex: m.Start, Length: m.Length, LanguageCode: code}
				return DetectionResult{HasProfanity: true, Matches: []Span{span}}
			}
		}
	}

	return DetectionResult{HasProfanity: false}
}

func (d *Detector) toSpans(matches []filter.Match, runes []rune, code string) []Span {
	var spans []Span
	for _, m := range matches {
		word := string(runes[m.Start : m.Start+m.Length])
		if d.allowlist[word] {
			continue
		}
		spans = append(spans, Span{Word: word, StartIndex: m.Start, Length: m.Length, LanguageCode: code})
	}
	return spans
}

// resolveCandidates implements spec.md §4.7's language-selection
// pseudocode: when auto_detect is on, script heuristics narrow to
// already-loaded languages, falling back to every loaded language and
// finally to every known language (via the pack table) if nothing
// narrows; when auto_detect is off, the enabled list is used as-is.
func (d *Detector) resolveCandidates(runes []rune) []string {
	if !d.cfg.Languages.AutoDetect {
		return d.cfg.Languages.Enabled
	}

	likely := langdetect.Likely(string(runes))
	loaded := d.registry.Active()
	candidates := intersect(likely, loaded)

	if len(candidates) == 0 && len(loaded) > 0 {
		candidates = loaded
	}
	if len(candidates) == 0 {
		var all []string
		if d.packTable != nil {
			all = d.packTable.AllCodes()
		}
		d.registry.Load(all)
		candidates = all
	}
	return candidates
}

func phraseTokenTexts(tokens []phrase.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, x := range b {
		set[x] = true
	}
	var out []string
	for _, x := range a {
		if set[x] {
			out = append(out, x)
		}
	}
	return out
}

// Sanitize runs Detect and returns text with every match span masked,
// per spec.md §4.7. Spans are applied in ascending start order; a span
// that overlaps an already-masked region is skipped (spec.md §9). When
// detection.length_preserving is off, span positions refer to the
// normalized text, so the normalized text is masked and returned instead.
func (d *Detector) Sanitize(text string) (string, error) {
	d.mu.RLock()
	enabled := d.cfg.Masking.Enabled
	d.mu.RUnlock()
	if !enabled {
		return text, nil
	}

	result, err := d.Detect(text)
	if err != nil {
		return "", err
	}
	if !result.HasProfanity {
		return text, nil
	}

	d.mu.RLock()
	masking := d.cfg.Masking
	normOpts := d.normOpts
	d.mu.RUnlock()

	runes := []rune(text)
	if !normOpts.LengthPreserving {
		runes = []rune(normalize.Normalize(text, normOpts))
	}
	patternChar := []rune(masking.PatternChar)[0]

	// Copy before sorting: result.Matches is shared with the cache.
	spans := append([]Span(nil), result.Matches...)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].StartIndex < spans[j].StartIndex })

	lastEnd := -1
	for _, span := range spans {
		if span.StartIndex < lastEnd {
			continue // overlaps an already-masked region
		}
		end := span.StartIndex + span.Length
		if !masking.PreserveLength {
			masked := make([]rune, 0, max(1, span.Length))
			n := span.Length
			if n < 1 {
				n = 1
			}
			for i := 0; i < n; i++ {
				masked = append(masked, patternChar)
			}
			runes = spliceRunes(runes, span.StartIndex, end, masked)
			lastEnd = span.StartIndex + len(masked)
			continue
		}

		for i := span.StartIndex; i < end; i++ {
			pos := i - span.StartIndex
			if (masking.PreserveFirst && pos == 0) || (masking.PreserveLast && pos == span.Length-1) {
				continue
			}
			runes[i] = patternChar
		}
		lastEnd = end
	}

	return string(runes), nil
}

func spliceRunes(runes []rune, start, end int, replacement []rune) []rune {
	out := make([]rune, 0, len(runes)-(end-start)+len(replacement))
	out = append(out, runes[:start]...)
	out = append(out, replacement...)
	out = append(out, runes[end:]...)
	return out
}

// LoadLanguages pulls raw word lists for codes from the pack table and
// compiles their matchers, signalling completion on the returned
// channel (spec.md §5: expressed asynchronously for caller convenience,
// though the pack table itself is in-memory and this never blocks on
// I/O).
func (d *Detector) LoadLanguages(codes []string) <-chan error {
	done := make(chan error, 1)
	d.mu.Lock()
	d.registry.Load(codes)
	d.cache.Purge()
	d.mu.Unlock()
	d.log.Infof("LoadLanguages: %v", codes)
	done <- nil
	close(done)
	return done
}

// SetLanguages replaces the active language list and fallback,
// rebuilding affected matchers (spec.md §4.6's set_active).
func (d *Detector) SetLanguages(codes []string, fallback string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registry.SetActive(codes)
	d.cfg.Languages.Enabled = append([]string(nil), codes...)
	if fallback != "" {
		d.cfg.Languages.Fallback = fallback
	}
	d.cache.Purge()
	d.log.Infof("SetLanguages: %v, fallback: %s", codes, d.cfg.Languages.Fallback)
}

// SetAlgorithm rebuilds every active language's matcher under alg.
func (d *Detector) SetAlgorithm(alg string) error {
	a := filter.Algorithm(alg)
	if a != filter.AlgorithmTrie && a != filter.AlgorithmAho {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.registry.SetAlgorithm(a)
	d.cfg.Detection.Algorithm = alg
	d.cache.Purge()
	d.log.Infof("SetAlgorithm: %s", alg)
	return nil
}

// AddWord adds word to code's word set (or the configured fallback
// language if code is empty), rebuilding that language's matcher.
func (d *Detector) AddWord(word, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if code == "" {
		code = d.cfg.Languages.Fallback
	}
	d.registry.AddWord(word, code)
	d.cache.Purge()
	d.log.Infof("AddWord: %s, language: %s", word, code)
}

// RemoveWord removes word from code's word set (or the fallback
// language if code is empty).
func (d *Detector) RemoveWord(word, code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if code == "" {
		code = d.cfg.Languages.Fallback
	}
	d.registry.RemoveWord(word, code)
	d.cache.Purge()
	d.log.Infof("RemoveWord: %s, language: %s", word, code)
}

// EnablePrefilter toggles the registry's optional Bloom pre-filter
// (SPEC_FULL.md's "new components" section). It only ever skips the
// exact matcher, never the phrase or fuzzy stages, and the registry
// itself refuses to engage it while ignore_separators is non-empty or
// whole_words_only is off.
func (d *Detector) EnablePrefilter(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registry.WithPrefilter(enabled)
	d.log.Infof("EnablePrefilter: %v", enabled)
}

// AddPhrase adds a multi-word phrase to the shared phrase store.
func (d *Detector) AddPhrase(phraseText string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phrases.add(phraseText, d.normOpts)
	d.cache.Purge()
	d.log.Infof("AddPhrase: %s", phraseText)
}

// RemovePhrase removes a previously added phrase.
func (d *Detector) RemovePhrase(phraseText string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phrases.remove(phraseText, d.normOpts)
	d.cache.Purge()
	d.log.Infof("RemovePhrase: %s", phraseText)
}
