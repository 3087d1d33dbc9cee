package profanity

// Span is a single match reported by Detect, in code-point positions of
// the normalized text (spec.md §3). When detection.length_preserving
// holds -- the default -- these positions equal positions in the caller's
// original, un-normalized input.
type Span struct {
	Word         string
	StartIndex   int
	Length       int
	LanguageCode string
}

// DetectionResult is Detect's return value (spec.md §6).
type DetectionResult struct {
	HasProfanity bool
	Matches      []Span
}
