package solver

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bent101/wordle-entropy/hint"
)

var testPool = []string{
	"ABBEY", "ABIDE", "BABES", "BRAIN", "BRAVE", "CRANE", "DRAIN", "EERIE",
	"ERASE", "GRAPE", "HELLO", "LLAMA", "PILOT", "PLANE", "ROATE", "SLATE",
	"SOARE", "SPEED", "THEME", "TRAIN", "TRACE", "CRATE", "STARE", "SNARE",
	"SHARE", "SPARE", "SCARE", "GLOAT", "FLOAT", "BLOAT",
}

func isStarter(r *Ranker, w ScoredWord) bool {
	for _, s := range r.Starters() {
		if s == w {
			return true
		}
	}
	return false
}

func TestRankColdStart(t *testing.T) {
	r := NewRanker(WithSeed(1))
	picked := map[string]int{}
	for range 60 {
		got, err := r.Rank(NewWordSet(testPool...), NewWordSet())
		require.NoError(t, err)
		assert.True(t, got.Starter)
		assert.True(t, isStarter(r, got.Best), got.Best)
		assert.Empty(t, got.Scores)
		picked[got.Best.Word]++
	}

	// every starter is reachable
	for _, s := range r.Starters() {
		assert.Positive(t, picked[s.Word], "starter %s never picked", s.Word)
	}
}

func TestRankExhaustedPoolFallsBackToStarter(t *testing.T) {
	r := NewRanker(WithSeed(2))
	answers := NewWordSet("CRANE", "TRAIN", "GRAPE")
	got, err := r.Rank(answers, NewWordSet("crane ", "TRAIN", "grape", "EXTRA"))
	require.NoError(t, err)
	assert.True(t, got.Starter)
	assert.True(t, isStarter(r, got.Best))
	assert.Zero(t, got.Remaining)
}

func TestRankEmptyAnswers(t *testing.T) {
	r := NewRanker()
	_, err := r.Rank(NewWordSet(), NewWordSet())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.Rank(NewWordSet("  ", ""), NewWordSet("CRANE"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRankMixedLengths(t *testing.T) {
	r := NewRanker()
	_, err := r.Rank(NewWordSet("CRANE", "TRAINS", "GRAPE"), NewWordSet("GRAPE"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, hint.ErrLengthMismatch)
}

func TestRankReferenceScenario(t *testing.T) {
	r := NewRanker(WithSeed(3))
	got, err := r.Rank(
		NewWordSet("CRANE", "TRAIN", "GRAPE", "PLANE", "BRAVE"),
		NewWordSet("BRAVE"),
	)
	require.NoError(t, err)

	assert.False(t, got.Starter)
	assert.Equal(t, 4, got.Remaining)
	// every candidate splits the four answers into singletons, so the
	// first one in order wins
	assert.Equal(t, ScoredWord{Word: "CRANE", Entropy: 2}, got.Best)
	assert.Equal(t, []ScoredWord{
		{"CRANE", 2}, {"GRAPE", 2}, {"PLANE", 2}, {"TRAIN", 2},
	}, got.Scores)
}

func TestRankScoresWholePoolWhenSmall(t *testing.T) {
	r := NewRanker(WithSampleSize(len(testPool)), WithSeed(4))
	used := NewWordSet("ABBEY")
	got, err := r.Rank(NewWordSet(testPool...), used)
	require.NoError(t, err)

	remaining := NewWordSet(testPool...).Difference(used).Sorted()
	require.Len(t, got.Scores, len(remaining))
	for i, s := range got.Scores {
		assert.Equal(t, remaining[i], s.Word)
	}

	best, entropy := MaxBy(got.Scores, func(s ScoredWord) float64 { return s.Entropy })
	assert.Equal(t, best.Word, got.Best.Word)
	assert.Equal(t, Round2(entropy), got.Best.Entropy)
}

func TestRankSamplesDownLargePools(t *testing.T) {
	r := NewRanker(WithSampleSize(7), WithSeed(5))
	answers := NewWordSet(testPool...)
	used := NewWordSet("ABBEY", "ABIDE")
	remaining := answers.Difference(used)

	for range 10 {
		got, err := r.Rank(answers, used)
		require.NoError(t, err)
		require.Len(t, got.Scores, 7)

		seen := map[string]bool{}
		for _, s := range got.Scores {
			assert.True(t, remaining.Contains(s.Word), s.Word)
			assert.False(t, seen[s.Word], "sampled twice: %s", s.Word)
			seen[s.Word] = true
		}
		assert.True(t, seen[got.Best.Word])
	}
}

func TestRankIsDeterministicWithoutSampling(t *testing.T) {
	answers := NewWordSet(testPool...)
	used := NewWordSet("SLATE", "CRANE")

	first, err := NewRanker(WithSampleSize(100)).Rank(answers, used)
	require.NoError(t, err)
	for range 5 {
		got, err := NewRanker(WithSampleSize(100)).Rank(answers, used)
		require.NoError(t, err)
		assert.Equal(t, first.Best, got.Best)
		assert.Equal(t, first.Scores, got.Scores)
	}
}

func TestRankSameSeedSameSample(t *testing.T) {
	answers := NewWordSet(testPool...)
	used := NewWordSet("SLATE")

	a, err := NewRanker(WithSampleSize(5), WithSeed(42)).Rank(answers, used)
	require.NoError(t, err)
	b, err := NewRanker(WithSampleSize(5), WithRand(rand.New(rand.NewPCG(42, 42^0x9e3779b97f4a7c15)))).Rank(answers, used)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRankConcurrent(t *testing.T) {
	r := NewRanker(WithSampleSize(5))
	answers := NewWordSet(testPool...)
	used := NewWordSet("SLATE")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Rank(answers, used)
			assert.NoError(t, err)
			assert.Len(t, got.Scores, 5)
		}()
	}
	wg.Wait()
}

func TestWithStarters(t *testing.T) {
	custom := []ScoredWord{{Word: "SALET", Entropy: 5.83}}
	r := NewRanker(WithStarters(custom))
	custom[0].Word = "MUTATED"

	got, err := r.Rank(NewWordSet("CRANE"), NewWordSet())
	require.NoError(t, err)
	assert.Equal(t, ScoredWord{Word: "SALET", Entropy: 5.83}, got.Best)

	// empty tables keep the default
	assert.Equal(t, DefaultStarters(), NewRanker(WithStarters(nil)).Starters())
}

func TestWithSampleSizeIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultSampleSize, NewRanker(WithSampleSize(0)).SampleSize())
	assert.Equal(t, 3, NewRanker(WithSampleSize(3)).SampleSize())
}
