// Package normalize implements the per-code-point text canonicalization
// pipeline that every matcher stage in this repository runs against.
package normalize

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Options controls which normalization steps run and how. It mirrors the
// subset of the detection configuration that affects text canonicalization.
type Options struct {
	CaseSensitive     bool
	StripInvisible    bool
	StripDiacritics   bool
	ConfusableMapping bool
	UseCompatForm     bool
	LengthPreserving  bool
}

// invisible code points that get collapsed to a space (length-preserving)
// or dropped entirely (otherwise).
var invisibles = map[rune]bool{
	0x200B: true, // zero-width space
	0x200C: true, // zero-width non-joiner
	0x200D: true, // zero-width joiner
	0xFEFF: true, // BOM
	0x00AD: true, // soft hyphen
}

// confusables is the required minimum substitution table from spec.md §4.1.
var confusables = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
	'|': 'i',
	'€': 'e',
	'£': 'l',
	'¢': 'c',
	'§': 's',
}

const combiningMarksLo = 0x0300
const combiningMarksHi = 0x036F

// Normalize transforms text per spec.md §4.1. When opts.LengthPreserving is
// true the result has exactly as many code points as the input, and
// position i in the result corresponds to position i in the input.
func Normalize(text string, opts Options) string {
	if opts.UseCompatForm && !opts.LengthPreserving {
		text = norm.NFKC.String(text)
	}

	runes := []rune(text)
	out := make([]rune, 0, len(runes))

	for _, r := range runes {
		r = step1Case(r, opts)

		if handled, emitted := step2Invisible(r, opts); handled {
			if emitted {
				out = append(out, ' ')
			}
			continue
		}

		base := step3Diacritics(r, opts)

		for i, br := range base {
			br = step4Confusable(br, opts)
			if opts.LengthPreserving && i > 0 {
				// retain only the first base character in length-preserving mode
				break
			}
			out = append(out, br)
		}
	}

	return string(out)
}

func step1Case(r rune, opts Options) rune {
	if opts.CaseSensitive {
		return r
	}
	return unicode.ToLower(r)
}

// step2Invisible reports whether r was an invisible control point, and if
// so whether it should be replaced with a space (handled=true) or dropped
// silently (handled=true, emitted=false).
func step2Invisible(r rune, opts Options) (handled bool, emitted bool) {
	if !opts.StripInvisible || !invisibles[r] {
		return false, false
	}
	if opts.LengthPreserving {
		return true, true
	}
	return true, false
}

// step3Diacritics applies compatibility decomposition to a single code
// point and strips combining marks in the U+0300-U+036F range, returning
// the resulting base rune sequence (length 1 in the common case).
func step3Diacritics(r rune, opts Options) []rune {
	if !opts.StripDiacritics {
		return []rune{r}
	}

	decomposed := norm.NFKD.String(string(r))
	base := make([]rune, 0, len(decomposed))
	for _, dr := range decomposed {
		if dr >= combiningMarksLo && dr <= combiningMarksHi {
			continue
		}
		base = append(base, dr)
	}
	if len(base) == 0 {
		return []rune{r}
	}
	return base
}

func step4Confusable(r rune, opts Options) rune {
	if !opts.ConfusableMapping {
		return r
	}
	if mapped, ok := confusables[r]; ok {
		return mapped
	}
	return r
}

// IsWordChar reports whether r counts as a "word character" (Unicode
// letter, digit, or underscore) for whole-word boundary checks and
// tokenization, shared by every matcher stage.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ExpandEszett returns the German ß->ss expansion of word, or ("", false)
// if word contains no ß. Applied at word-set build time, not during text
// normalization, per spec.md §4.1's language-specific pre-normalization
// hook.
func ExpandEszett(word string) (string, bool) {
	if !containsRune(word, 'ß') {
		return "", false
	}
	out := make([]rune, 0, len(word)+1)
	for _, r := range word {
		if r == 'ß' {
			out = append(out, 's', 's')
		} else {
			out = append(out, r)
		}
	}
	return string(out), true
}

func containsRune(s string, target rune) bool {
	for _, r := range s {
		if r == target {
			return true
		}
	}
	return false
}
