package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/bent101/wordle-entropy/solver"
	"github.com/bent101/wordle-entropy/words"
)

func runPrecompute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("precompute", flag.ExitOnError)
	resolve := configFlags(fs)
	top := fs.Int("top", 10, "How many starters to keep")
	out := fs.String("out", "starters.json", "Where to write the starter table")
	workers := fs.Int("workers", 8, "Words scored in parallel")
	fs.Parse(args)

	if *top < 1 {
		return fmt.Errorf("-top must be >= 1")
	}
	cfg, err := resolve()
	if err != nil {
		return err
	}
	lists, err := words.Dir(cfg.DataDir).Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println("=== WORDLE STARTER PRECOMPUTATION ===")

	answers := solver.NewWordSet(lists.Answers...).Sorted()
	if len(answers) == 0 {
		return fmt.Errorf("%w: answer pool is empty", solver.ErrInvalidInput)
	}
	// with no separate guess list, starters come from the answers themselves
	guesses := solver.NewWordSet(lists.Guesses...).Sorted()
	if len(guesses) == 0 {
		guesses = answers
	}

	start := time.Now()
	scores, err := scoreStarters(ctx, guesses, answers, *workers)
	if err != nil {
		return err
	}
	fmt.Printf("Scored %d guesses against %d answers in %v\n", len(guesses), len(answers), time.Since(start))

	starters := topStarters(scores, *top)

	jsonData, err := json.MarshalIndent(starters, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal starters: %w", err)
	}
	if err := os.WriteFile(*out, jsonData, 0644); err != nil {
		return fmt.Errorf("write starters: %w", err)
	}
	fmt.Printf("✓ Wrote %d starters to %s\n", len(starters), *out)

	fmt.Println("\n=== TOP STARTERS ===")
	for i, s := range starters {
		fmt.Printf("%3d. %s %.2f bits\n", i+1, s.Word, s.Entropy)
	}

	best, err := solver.NewPartition(starters[0].Word, answers)
	if err != nil {
		return err
	}
	fmt.Println()
	printWordHints(os.Stdout, best)
	return nil
}

// scoreStarters computes the entropy of every guess against answers.
func scoreStarters(ctx context.Context, guesses, answers []string, workers int) ([]solver.ScoredWord, error) {
	if workers < 1 {
		workers = 1
	}
	bar := progressbar.Default(int64(len(guesses)))

	scores := make([]solver.ScoredWord, len(guesses))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entropy, err := solver.Entropy(guesses[i], answers)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				scores[i] = solver.ScoredWord{Word: guesses[i], Entropy: entropy}
				bar.Add(1)
			}
		}()
	}

feed:
	for i := range guesses {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, fmt.Errorf("%w: %w", solver.ErrInvalidInput, firstErr)
	}
	return scores, nil
}

// topStarters keeps the n best scores, highest first, rounded for the table.
// Ties keep their input order.
func topStarters(scores []solver.ScoredWord, n int) []solver.ScoredWord {
	sorted := append([]solver.ScoredWord(nil), scores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Entropy > sorted[j].Entropy
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	for i := range sorted {
		sorted[i].Entropy = solver.Round2(sorted[i].Entropy)
	}
	return sorted
}
