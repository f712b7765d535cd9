package solver

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/bent101/wordle-entropy/hint"
)

// Partition groups a pool of answers by the hint a guess gets against each.
// Groups hold indices into Answers.
type Partition struct {
	Guess   string
	Answers []string
	Groups  map[hint.Hint]*bitset.BitSet
}

// Group is one cell of a Partition.
type Group struct {
	Hint    hint.Hint
	Answers []string
}

// NewPartition scores guess against every answer.
func NewPartition(guess string, answers []string) (*Partition, error) {
	p := &Partition{
		Guess:   guess,
		Answers: answers,
		Groups:  make(map[hint.Hint]*bitset.BitSet),
	}
	for i, answer := range answers {
		h, err := hint.New(guess, answer)
		if err != nil {
			return nil, err
		}
		group := p.Groups[h]
		if group == nil {
			group = bitset.New(uint(len(answers)))
			p.Groups[h] = group
		}
		group.Set(uint(i))
	}
	return p, nil
}

// Counts returns the group sizes in ascending order.
func (p *Partition) Counts() []int {
	counts := make([]int, 0, len(p.Groups))
	for _, group := range p.Groups {
		counts = append(counts, int(group.Count()))
	}
	sort.Ints(counts)
	return counts
}

// Entropy is the Shannon entropy in bits of the partition's group sizes.
func (p *Partition) Entropy() float64 {
	return entropyOf(p.Counts(), len(p.Answers))
}

// Sorted lists the groups largest first; equal sizes are ordered by hint code.
func (p *Partition) Sorted() []Group {
	groups := make([]Group, 0, len(p.Groups))
	for h, set := range p.Groups {
		words := make([]string, 0, set.Count())
		for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
			words = append(words, p.Answers[i])
		}
		groups = append(groups, Group{Hint: h, Answers: words})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Answers) != len(groups[j].Answers) {
			return len(groups[i].Answers) > len(groups[j].Answers)
		}
		return groups[i].Hint.Code() < groups[j].Hint.Code()
	})
	return groups
}

// Entropy is shorthand for NewPartition(guess, answers).Entropy().
func Entropy(guess string, answers []string) (float64, error) {
	p, err := NewPartition(guess, answers)
	if err != nil {
		return 0, err
	}
	return p.Entropy(), nil
}

// entropyOf sums in the order of counts so equal partitions always give
// bit-identical results.
func entropyOf(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	var entropy float64
	for _, count := range counts {
		prob := float64(count) / float64(total)
		entropy -= prob * math.Log2(prob)
	}
	if entropy < 0 {
		return 0
	}
	return entropy
}

// Round2 rounds to two decimals for display.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
