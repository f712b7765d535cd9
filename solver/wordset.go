package solver

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// NormalizeWord trims and uppercases w. An empty result means w is not a word.
func NormalizeWord(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// WordSet is an immutable set of normalized words. The zero value is empty.
type WordSet struct {
	set mapset.Set[string]
}

// NewWordSet normalizes words and drops the ones that end up empty.
// Duplicates collapse.
func NewWordSet(words ...string) WordSet {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(words))
	for _, w := range words {
		if w = NormalizeWord(w); w != "" {
			set.Add(w)
		}
	}
	return WordSet{set: set}
}

func (s WordSet) items() mapset.Set[string] {
	if s.set == nil {
		return mapset.NewThreadUnsafeSet[string]()
	}
	return s.set
}

func (s WordSet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Cardinality()
}

func (s WordSet) Contains(w string) bool {
	return s.set != nil && s.set.Contains(NormalizeWord(w))
}

// Difference returns the words of s that are not in other.
func (s WordSet) Difference(other WordSet) WordSet {
	return WordSet{set: s.items().Difference(other.items())}
}

// Sorted lists the words in lexicographic order.
func (s WordSet) Sorted() []string {
	words := s.items().ToSlice()
	sort.Strings(words)
	return words
}
