// Package langdetect implements the deterministic script-range heuristic
// from spec.md §4.7 used to guess candidate language codes for text.
package langdetect

// scriptRange maps a contiguous Unicode block to the language codes it
// suggests. Order matters: checks run in this exact sequence and the
// first matching range wins for any given code point.
type scriptRange struct {
	lo, hi rune
	codes  []string
}

var ranges = []scriptRange{
	{0x4E00, 0x9FFF, []string{"zh"}}, // CJK Unified
	{0x3040, 0x30FF, []string{"ja"}}, // Hiragana/Katakana
	{0xAC00, 0xD7AF, []string{"ko"}}, // Hangul
	{0x0400, 0x04FF, []string{"ru"}}, // Cyrillic
	{0x0600, 0x06FF, []string{"ar", "fa"}},
	{0x0590, 0x05FF, []string{"he"}},
	{0x0900, 0x097F, []string{"hi"}}, // Devanagari
	{0x0E00, 0x0E7F, []string{"th"}},
}

// Likely returns the de-duplicated set of language codes suggested by the
// scripts present in text, ordered by the first code point that suggests
// each one. Every code point is checked against the ranges in the order of
// spec.md §4.7.
func Likely(text string) []string {
	seen := make(map[string]bool)
	var codes []string

	for _, r := range text {
		for _, rng := range ranges {
			if r < rng.lo || r > rng.hi {
				continue
			}
			for _, code := range rng.codes {
				if !seen[code] {
					seen[code] = true
					codes = append(codes, code)
				}
			}
			break
		}
	}

	return codes
}
