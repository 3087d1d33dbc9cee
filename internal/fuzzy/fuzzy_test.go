package fuzzy

import "testing"

func TestScan_FindsCloseMatch(t *testing.T) {
	opts := Options{MaxEditDistance: 1}
	m, ok := Scan([]rune("you are a bitchh today"), []string{"bitch"}, opts)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Start != 10 || m.Length != 5 {
		t.Errorf("got %+v", m)
	}
}

func TestScan_NoMatchBeyondDistance(t *testing.T) {
	opts := Options{MaxEditDistance: 1}
	_, ok := Scan([]rune("completely unrelated text"), []string{"bitch"}, opts)
	if ok {
		t.Error("expected no match")
	}
}

func TestScan_TokenBoundedSkipsMidWord(t *testing.T) {
	opts := Options{MaxEditDistance: 1, TokenBoundedFuzzy: true}
	// "superbitchy" contains a close match to "bitch" starting mid-word;
	// token-bounded fuzzy must skip starts preceded by a word character.
	_, ok := Scan([]rune("superbitchy"), []string{"bitch"}, opts)
	if ok {
		t.Error("expected token-bounded fuzzy to reject a mid-word start")
	}
}

func TestScan_FirstWordWins(t *testing.T) {
	opts := Options{MaxEditDistance: 1}
	m, ok := Scan([]rune("bitchh"), []string{"bitch", "shit"}, opts)
	if !ok || m.Start != 0 {
		t.Errorf("expected first word to match at 0, got %+v ok=%v", m, ok)
	}
}
