// Package fuzzy implements the sliding-window edit-distance fallback
// scanner from spec.md §4.5, used only when exact and phrase matching
// found nothing and max_edit_distance > 0.
package fuzzy

import (
	"github.com/agnivade/levenshtein"

	"profanity/internal/normalize"
)

// Match is a single approximate hit in code-point coordinates.
type Match struct {
	Start  int
	Length int
}

// Options controls the scanner's behavior, mirroring the relevant subset
// of spec.md §3's detection configuration.
type Options struct {
	MaxEditDistance   int
	TokenBoundedFuzzy bool
	WholeWordsOnly    bool
}

// scaledMaxDistance computes d = min(max_edit_distance, floor(|w|/5)) per
// spec.md §4.5.
func scaledMaxDistance(wordLen, maxEditDistance int) int {
	scaled := wordLen / 5
	if maxEditDistance < scaled {
		return maxEditDistance
	}
	return scaled
}

// Scan searches text for the first word (in order) that has an
// approximate match at some position (in order), and returns immediately:
// spec.md §4.5 and §5 both specify first-match-wins, per-word-then-per-
// language semantics; the per-language stop is the caller's
// responsibility (the caller tries the next language only if Scan
// returns false).
func Scan(text []rune, words []string, opts Options) (Match, bool) {
	n := len(text)

	for _, word := range words {
		wr := []rune(word)
		wl := len(wr)
		if wl == 0 {
			continue
		}
		d := scaledMaxDistance(wl, opts.MaxEditDistance)

		for i := 0; i < n; i++ {
			if opts.TokenBoundedFuzzy && i > 0 && normalize.IsWordChar(text[i-1]) {
				continue
			}

			windowLen := wl + d
			if i+windowLen > n {
				windowLen = n - i
			}
			if windowLen < wl {
				continue
			}

			bestDist := -1
			bestOffset := 0
			for offset := 0; offset+wl <= windowLen; offset++ {
				candidate := string(text[i+offset : i+offset+wl])
				dist := levenshtein.ComputeDistance(candidate, word)
				if bestDist == -1 || dist < bestDist {
					bestDist = dist
					bestOffset = offset
				}
			}

			if bestDist == -1 || bestDist > d {
				continue
			}

			start := i + bestOffset
			end := start + wl

			if opts.WholeWordsOnly {
				if start > 0 && normalize.IsWordChar(text[start-1]) {
					continue
				}
				if end < n && normalize.IsWordChar(text[end]) {
					continue
				}
			}

			return Match{Start: start, Length: wl}, true
		}
	}

	return Match{}, false
}
