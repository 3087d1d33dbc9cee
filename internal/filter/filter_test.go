package filter

import (
	"reflect"
	"sort"
	"testing"
)

func sortMatches(m []Match) []Match {
	out := append([]Match(nil), m...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Length < out[j].Length
	})
	return out
}

func buildBoth(words []string) (*Trie, *AhoCorasick) {
	tr := NewTrie()
	tr.InsertAll(words)
	tr.Finalize()

	ac := NewAhoCorasick()
	ac.InsertAll(words)
	ac.Finalize()
	return tr, ac
}

func TestTrie_BasicMatch(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"bitch"})
	tr.Finalize()

	got := tr.FindAll([]rune("you are a bitch"), false, nil)
	want := []Match{{Start: 10, Length: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTrie_SeparatorTransparency(t *testing.T) {
	separators := map[rune]bool{' ': true, '.': true, '-': true, '_': true, '*': true}
	tr := NewTrie()
	tr.InsertAll([]string{"shit"})
	tr.Finalize()

	text := []rune("s*h-i t happens")
	got := tr.FindAll(text, false, separators)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(got), got)
	}
	if got[0].Start != 0 || got[0].Length != 7 {
		t.Errorf("got %+v, want start=0 length=7", got[0])
	}
}

func TestTrie_WholeWordBoundary(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"ass"})
	tr.Finalize()

	text := []rune("assassin")
	got := tr.FindAll(text, true, nil)
	if len(got) != 0 {
		t.Errorf("expected no whole-word match inside assassin, got %v", got)
	}

	text2 := []rune("you are an ass")
	got2 := tr.FindAll(text2, true, nil)
	if len(got2) != 1 {
		t.Fatalf("expected 1 match, got %v", got2)
	}
}

func TestTrie_LongestTerminalWins(t *testing.T) {
	tr := NewTrie()
	tr.InsertAll([]string{"bad", "badword"})
	tr.Finalize()

	got := tr.FindAll([]rune("badword"), false, nil)
	if len(got) != 1 || got[0].Length != 7 {
		t.Fatalf("expected single longest match, got %v", got)
	}
}

func TestAhoCorasick_MustBuildBeforeSearch(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic when searching before Finalize")
		}
		if err, ok := r.(error); !ok || err != ErrUnbuiltMatcher {
			t.Errorf("expected panic value ErrUnbuiltMatcher, got %v", r)
		}
	}()
	ac := NewAhoCorasick()
	ac.InsertAll([]string{"x"})
	ac.FindAll([]rune("x"), false, nil)
}

func TestAhoCorasick_Overlapping(t *testing.T) {
	ac := NewAhoCorasick()
	ac.InsertAll([]string{"he", "she", "his", "hers"})
	ac.Finalize()

	got := sortMatches(ac.FindAll([]rune("she"), false, nil))
	want := []Match{{Start: 0, Length: 3}, {Start: 1, Length: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAhoCorasick_SeparatorTransparency(t *testing.T) {
	separators := map[rune]bool{' ': true, '.': true, '-': true, '_': true, '*': true}
	ac := NewAhoCorasick()
	ac.InsertAll([]string{"shit"})
	ac.Finalize()

	text := []rune("s*h-i t happens")
	got := ac.FindAll(text, false, separators)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(got), got)
	}
	if got[0].Start != 0 || got[0].Length != 7 {
		t.Errorf("got %+v, want start=0 length=7", got[0])
	}
}

func TestAhoCorasick_PrefixPatternLongestWins(t *testing.T) {
	ac := NewAhoCorasick()
	ac.InsertAll([]string{"bad", "badword"})
	ac.Finalize()

	got := ac.FindAll([]rune("a badword here"), false, nil)
	want := []Match{{Start: 2, Length: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v (expected only the longer \"badword\" match, not a nested \"bad\")", got, want)
	}
}

func TestAhoCorasick_WholeWordBoundary(t *testing.T) {
	ac := NewAhoCorasick()
	ac.InsertAll([]string{"ass"})
	ac.Finalize()

	got := ac.FindAll([]rune("assassin"), true, nil)
	if len(got) != 0 {
		t.Errorf("expected no whole-word match inside assassin, got %v", got)
	}
}

// AlgorithmEquivalence is spec.md §8's invariant: for identical word sets
// with inflections disabled, Trie and Aho-Corasick produce the same span
// set.
func TestAlgorithmEquivalence(t *testing.T) {
	words := []string{"bad", "badword", "word", "spam", "scam"}
	texts := []string{
		"this is bad, a badword, spam and scam all at once",
		"cleantext",
		"wordwordword",
	}

	tr, ac := buildBoth(words)
	for _, text := range texts {
		got1 := sortMatches(tr.FindAll([]rune(text), false, nil))
		got2 := sortMatches(ac.FindAll([]rune(text), false, nil))
		if !reflect.DeepEqual(got1, got2) {
			t.Errorf("text %q: trie=%v aho=%v", text, got1, got2)
		}
	}
}
