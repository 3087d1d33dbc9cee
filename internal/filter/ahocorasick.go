package filter

// ahoNode is a trie node augmented with a failure link and an output list
// of match lengths reachable from this node (its own terminal length plus
// those inherited through the failure chain), following the structure of
// the teacher's ahoCorasickNode in internal/pkg/filter/ahocorasick.go.
type ahoNode struct {
	children map[rune]*ahoNode
	fail     *ahoNode
	output   []int // rune-lengths of patterns ending here
	terminal bool
	depth    int
}

func newAhoNode(depth int) *ahoNode {
	return &ahoNode{children: make(map[rune]*ahoNode), depth: depth}
}

// AhoCorasick is an automaton with failure links enabling linear-time
// multi-pattern search (spec.md §4.3). It has the { inserting -> built }
// lifecycle spec.md §4.8 requires: FindAll before Finalize panics.
type AhoCorasick struct {
	root  *ahoNode
	built bool
}

// NewAhoCorasick creates an empty, unbuilt automaton.
func NewAhoCorasick() *AhoCorasick {
	return &AhoCorasick{root: newAhoNode(0)}
}

// InsertAll bulk-loads patterns as a trie, discarding any previous state.
// The automaton returns to the "inserting" state; Finalize must run again
// before FindAll is legal.
func (a *AhoCorasick) InsertAll(words []string) {
	a.root = newAhoNode(0)
	a.built = false
	for _, w := range words {
		if w == "" {
			continue
		}
		a.insert(w)
	}
}

func (a *AhoCorasick) insert(word string) {
	node := a.root
	depth := 0
	for _, r := range word {
		depth++
		child, ok := node.children[r]
		if !ok {
			child = newAhoNode(depth)
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
}

// Finalize builds the failure links by breadth-first traversal, per
// spec.md §4.3: depth-1 children fail to root; deeper nodes fail to the
// longest proper suffix also present in the trie. Each node accumulates
// the lengths of its own terminal plus those reachable via its failure
// link.
func (a *AhoCorasick) Finalize() {
	queue := make([]*ahoNode, 0)

	for _, child := range a.root.children {
		child.fail = a.root
		if child.terminal {
			child.output = append(child.output, child.depth)
		}
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for r, child := range current.children {
			queue = append(queue, child)

			failNode := current.fail
			for failNode != nil && failNode.children[r] == nil {
				failNode = failNode.fail
			}
			if failNode == nil {
				child.fail = a.root
			} else if target := failNode.children[r]; target != nil && target != child {
				child.fail = target
			} else {
				child.fail = a.root
			}

			if child.terminal {
				child.output = append(child.output, child.depth)
			}
			child.output = append(child.output, child.fail.output...)
		}
	}

	a.built = true
}

// FindAll implements spec.md §4.3's search: separator compaction with a
// position map, failure-link traversal, and output lookup translated back
// to original-text coordinates.
func (a *AhoCorasick) FindAll(text []rune, wholeWordsOnly bool, separators map[rune]bool) []Match {
	if !a.built {
		panic(ErrUnbuiltMatcher)
	}

	compact, originalIndex := compactSeparators(text, separators)

	var raw []Match
	node := a.root

	for i, c := range compact {
		for node != a.root && node.children[c] == nil {
			node = node.fail
		}
		if child, ok := node.children[c]; ok {
			node = child
		} else {
			node = a.root
		}

		for _, length := range node.output {
			startCompact := i - length + 1
			origStart := originalIndex[startCompact]
			origEndIncl := originalIndex[i]

			if wholeWordsOnly {
				if origStart > 0 && isWordChar(text[origStart-1]) {
					continue
				}
				if origEndIncl+1 < len(text) && isWordChar(text[origEndIncl+1]) {
					continue
				}
			}

			raw = append(raw, Match{Start: origStart, Length: origEndIncl - origStart + 1})
		}
	}

	return longestPerStart(raw)
}

// longestPerStart collapses raw candidates down to at most one match per
// start position, keeping the longest. This mirrors the Trie's "longest
// terminal from this start" rule (spec.md §4.2) so that two patterns in a
// prefix relationship (e.g. "bad" and "badword") don't make the
// Aho-Corasick backend report a nested match the Trie backend wouldn't,
// preserving spec.md §8's cross-backend algorithm-equivalence invariant.
// Matches starting elsewhere (e.g. "he" inside "she") are unaffected,
// since they occupy distinct starts and are kept independently.
func longestPerStart(raw []Match) []Match {
	if len(raw) == 0 {
		return nil
	}
	best := make(map[int]int, len(raw))
	order := make([]int, 0, len(raw))
	for _, m := range raw {
		if cur, ok := best[m.Start]; !ok {
			best[m.Start] = m.Length
			order = append(order, m.Start)
		} else if m.Length > cur {
			best[m.Start] = m.Length
		}
	}
	out := make([]Match, len(order))
	for i, start := range order {
		out[i] = Match{Start: start, Length: best[start]}
	}
	return out
}

// compactSeparators removes separator runes from text, returning the
// compacted rune slice and a parallel table mapping each compact-space
// index back to its index in the original text.
func compactSeparators(text []rune, separators map[rune]bool) ([]rune, []int) {
	if len(separators) == 0 {
		originalIndex := make([]int, len(text))
		for i := range text {
			originalIndex[i] = i
		}
		return text, originalIndex
	}

	compact := make([]rune, 0, len(text))
	originalIndex := make([]int, 0, len(text))
	for i, r := range text {
		if separators[r] {
			continue
		}
		compact = append(compact, r)
		originalIndex = append(originalIndex, i)
	}
	return compact, originalIndex
}
