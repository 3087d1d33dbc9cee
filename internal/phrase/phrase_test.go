package phrase

import "testing"

func defaultStopwords() map[string]bool {
	return map[string]bool{"of": true, "the": true, "a": true, "an": true, "and": true, "to": true}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize([]rune("you are a   bitch!"))
	want := []string{"you", "are", "a", "bitch"}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok.Text != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.Text, want[i])
		}
	}
}

func TestPhraseTrie_StopwordSkips(t *testing.T) {
	trie := NewTrie()
	trie.InsertAll([][]string{{"son", "of", "a", "bitch"}})

	text := []rune("you are a son of the a   bitch indeed")
	tokens := Tokenize(text)
	// maxSkips=1: the leading "a" before "son" is itself a stopword and
	// could otherwise bootstrap its own start into a second, overlapping
	// match (root has no child for "a", but FindAll tries a skip there
	// too); budgeting only one skip leaves that chain needing two
	// ("a", then "the") and so only the "son"-anchored start succeeds,
	// keeping this test's expectation unambiguous.
	matches := trie.FindAll(tokens, defaultStopwords(), 1)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	got := string(text[matches[0].Start:matches[0].End])
	if got != "son of the a   bitch" {
		t.Errorf("got span %q", got)
	}
}

func TestPhraseTrie_ExceedsSkipBudget(t *testing.T) {
	trie := NewTrie()
	trie.InsertAll([][]string{{"son", "of", "a", "bitch"}})

	text := []rune("son of the a and to a bitch")
	tokens := Tokenize(text)
	matches := trie.FindAll(tokens, defaultStopwords(), 2)

	if len(matches) != 0 {
		t.Errorf("expected skip budget exceeded to prevent match, got %v", matches)
	}
}

func TestPhraseTrie_NoMatch(t *testing.T) {
	trie := NewTrie()
	trie.InsertAll([][]string{{"son", "of", "a", "bitch"}})

	tokens := Tokenize([]rune("this is a clean sentence"))
	matches := trie.FindAll(tokens, defaultStopwords(), 2)
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestPhraseTrie_EarliestMatchWinsPerStart(t *testing.T) {
	trie := NewTrie()
	trie.InsertAll([][]string{{"bad"}, {"bad", "word"}})

	tokens := Tokenize([]rune("bad word"))
	matches := trie.FindAll(tokens, defaultStopwords(), 2)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	if matches[0].Start != 0 || matches[0].End != 3 {
		t.Errorf("expected earliest terminal (\"bad\") to win, got %+v", matches[0])
	}
}
