package solver

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScoredWord is a word and the entropy, in bits, it scored.
type ScoredWord struct {
	Word    string  `json:"word"`
	Entropy float64 `json:"entropy"`
}

// defaultStarters are the best opening guesses for the standard answer list,
// computed offline by the precompute command.
var defaultStarters = [...]ScoredWord{
	{Word: "CRANE", Entropy: 5.74},
	{Word: "SOARE", Entropy: 5.89},
	{Word: "ROATE", Entropy: 5.88},
}

// DefaultStarters returns a copy of the built-in starter table.
func DefaultStarters() []ScoredWord {
	return append([]ScoredWord(nil), defaultStarters[:]...)
}

// LoadStarters reads a starter table written by the precompute command.
func LoadStarters(path string) ([]ScoredWord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read starters: %w", err)
	}
	var starters []ScoredWord
	if err := json.Unmarshal(data, &starters); err != nil {
		return nil, fmt.Errorf("decode starters %s: %w", path, err)
	}

	out := starters[:0]
	for _, s := range starters {
		if s.Word = NormalizeWord(s.Word); s.Word != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("starters %s: no words", path)
	}
	return out, nil
}
