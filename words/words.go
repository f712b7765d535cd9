// Package words loads the answer, guess and used word lists.
package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bent101/wordle-entropy/solver"
)

// File names inside a data directory.
const (
	AnswersFile = "answerlist.json"
	GuessesFile = "wordlist.json"
	UsedFile    = "usedlist.json"
)

// ErrDataUnavailable is returned when a required list is missing or malformed.
var ErrDataUnavailable = errors.New("word data unavailable")

// Lists are the three word collections, already normalized.
// Guesses is only used to precompute starters.
type Lists struct {
	Answers []string
	Guesses []string
	Used    []string
}

// Source provides word lists.
type Source interface {
	Load(ctx context.Context) (*Lists, error)
}

// Dir reads the lists from JSON files in a directory.
// The guess list is optional; the other two are required.
type Dir string

func (d Dir) Load(ctx context.Context) (*Lists, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answers, err := ReadFile(filepath.Join(string(d), AnswersFile))
	if err != nil {
		return nil, err
	}
	used, err := ReadFile(filepath.Join(string(d), UsedFile))
	if err != nil {
		return nil, err
	}
	guesses, err := ReadFile(filepath.Join(string(d), GuessesFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &Lists{Answers: answers, Guesses: guesses, Used: used}, nil
}

// ReadFile decodes one JSON array of words and normalizes it.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrDataUnavailable, path, err)
	}
	return Normalize(raw), nil
}

// Normalize turns raw list entries into words.
//
// A non-empty array stands for its first element when that element is a
// string or a number; a string stands for itself; anything else is dropped.
// Results are trimmed and uppercased and empty ones are dropped. Order and
// duplicates are kept.
func Normalize(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		var w string
		switch v := entry.(type) {
		case []any:
			if len(v) == 0 {
				continue
			}
			switch first := v[0].(type) {
			case string:
				w = first
			case float64:
				w = strconv.FormatFloat(first, 'f', -1, 64)
			default:
				continue
			}
		case string:
			w = v
		default:
			continue
		}
		if w = solver.NormalizeWord(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Merge adds extra used words to a Source's used list.
type Merge struct {
	Source Source
	Extra  func(ctx context.Context) ([]string, error)
}

func (m Merge) Load(ctx context.Context) (*Lists, error) {
	lists, err := m.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if m.Extra == nil {
		return lists, nil
	}
	extra, err := m.Extra(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	merged := *lists
	merged.Used = append(append([]string(nil), lists.Used...), extra...)
	return &merged, nil
}
