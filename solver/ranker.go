package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bent101/wordle-entropy/hint"
)

// DefaultSampleSize caps how many candidates one ranking scores.
const DefaultSampleSize = 15

// ErrInvalidInput marks caller errors: an empty answer pool or words that
// cannot be compared.
var ErrInvalidInput = errors.New("invalid input")

// Ranking is the outcome of Ranker.Rank.
type Ranking struct {
	// Best has its entropy rounded to two decimals.
	Best ScoredWord
	// Starter is set when Best came from the starter table.
	Starter bool
	// Scores holds every scored candidate at full precision, in the order
	// they were considered. Empty when Starter is set.
	Scores    []ScoredWord
	Remaining int
}

// Ranker picks the guess whose feedback best splits the remaining answers.
// It is safe for concurrent use.
type Ranker struct {
	sampleSize int
	starters   []ScoredWord

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*Ranker)

// WithSampleSize sets the candidate cap. Values below 1 are ignored.
func WithSampleSize(n int) Option {
	return func(r *Ranker) {
		if n >= 1 {
			r.sampleSize = n
		}
	}
}

// WithRand sets the random source used for sampling and starter picks.
func WithRand(rng *rand.Rand) Option {
	return func(r *Ranker) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed is WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithStarters replaces the starter table. An empty table is ignored.
func WithStarters(starters []ScoredWord) Option {
	return func(r *Ranker) {
		if len(starters) > 0 {
			r.starters = append([]ScoredWord(nil), starters...)
		}
	}
}

func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		sampleSize: DefaultSampleSize,
		starters:   DefaultStarters(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return r
}

func (r *Ranker) SampleSize() int {
	return r.sampleSize
}

// Starters returns a copy of the starter table.
func (r *Ranker) Starters() []ScoredWord {
	return append([]ScoredWord(nil), r.starters...)
}

// Rank recommends the next guess.
//
// With nothing used yet, or nothing left once used words are removed, it
// picks a random starter. Otherwise it scores up to SampleSize words of the
// remaining pool against the whole remaining pool and returns the first one
// with the highest entropy.
func (r *Ranker) Rank(answers, used WordSet) (Ranking, error) {
	if answers.Len() == 0 {
		return Ranking{}, fmt.Errorf("%w: answer pool is empty", ErrInvalidInput)
	}
	if used.Len() == 0 {
		return r.starter(answers.Len()), nil
	}

	remaining := answers.Difference(used).Sorted()
	if len(remaining) == 0 {
		return r.starter(0), nil
	}
	if err := checkLengths(remaining); err != nil {
		return Ranking{}, err
	}

	scores, err := ScoreAll(r.sample(remaining), remaining)
	if err != nil {
		return Ranking{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	best, entropy := MaxBy(scores, func(s ScoredWord) float64 { return s.Entropy })
	return Ranking{
		Best:      ScoredWord{Word: best.Word, Entropy: Round2(entropy)},
		Scores:    scores,
		Remaining: len(remaining),
	}, nil
}

// ScoreAll computes each candidate's entropy against pool concurrently.
// The result keeps the order of candidates.
func ScoreAll(candidates, pool []string) ([]ScoredWord, error) {
	scores := make([]ScoredWord, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	for i, guess := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entropy, err := Entropy(guess, pool)
			scores[i] = ScoredWord{Word: guess, Entropy: entropy}
			errs[i] = err
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *Ranker) starter(remaining int) Ranking {
	r.mu.Lock()
	s := r.starters[r.rng.IntN(len(r.starters))]
	r.mu.Unlock()
	return Ranking{Best: s, Starter: true, Remaining: remaining}
}

// sample draws sampleSize words without replacement, or returns words as is
// when there are no more than that.
func (r *Ranker) sample(words []string) []string {
	if len(words) <= r.sampleSize {
		return words
	}
	picked := append([]string(nil), words...)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sampleSize {
		j := i + r.rng.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:r.sampleSize]
}

func checkLengths(words []string) error {
	want := utf8.RuneCountInString(words[0])
	if want > hint.MaxLen {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, hint.ErrTooLong, words[0])
	}
	for _, w := range words[1:] {
		if utf8.RuneCountInString(w) != want {
			return fmt.Errorf("%w: %w: %q and %q", ErrInvalidInput, hint.ErrLengthMismatch, words[0], w)
		}
	}
	return nil
}
