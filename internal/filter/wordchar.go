package filter

import "profanity/internal/normalize"

func isWordChar(r rune) bool {
	return normalize.IsWordChar(r)
}
