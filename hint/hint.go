package hint

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Mark is the feedback for a single letter of a guess.
type Mark uint8

const (
	Gray   Mark = iota // letter absent from the answer
	Yellow             // letter present elsewhere
	Green              // letter in the right spot
)

// MaxLen is the longest word a Hint can describe; 3^40 still fits in a uint64.
const MaxLen = 40

var (
	ErrLengthMismatch = errors.New("guess and answer lengths differ")
	ErrTooLong        = fmt.Errorf("word longer than %d letters", MaxLen)
)

// Hint is the feedback pattern a guess receives against one answer.
// It is comparable so it can key a map of partitions.
type Hint struct {
	rank uint64 // marks as a base 3 number (for hashing)
	size uint8
}

// New computes the hint for guess against answer.
//
// Greens are taken first and removed from the answer's letter pool, then
// each remaining guess letter claims the leftmost unclaimed copy of itself,
// so a guess never gets more yellows for a letter than the answer has left.
func New(guess, answer string) (Hint, error) {
	g, a := []rune(guess), []rune(answer)
	if len(g) != len(a) {
		return Hint{}, fmt.Errorf("%w: %q has %d letters, %q has %d", ErrLengthMismatch, guess, len(g), answer, len(a))
	}
	if len(g) > MaxLen {
		return Hint{}, fmt.Errorf("%w: %q", ErrTooLong, guess)
	}

	marks := make([]Mark, len(g))

	// greens, collecting the answer letters they don't use
	unclaimed := make([]rune, 0, len(a))
	for i := range g {
		if g[i] == a[i] {
			marks[i] = Green
		} else {
			unclaimed = append(unclaimed, a[i])
		}
	}

	// yellows
	for i := range g {
		if marks[i] == Green {
			continue
		}
		if j := slices.Index(unclaimed, g[i]); j >= 0 {
			marks[i] = Yellow
			unclaimed = slices.Delete(unclaimed, j, j+1)
		}
	}

	return FromMarks(marks), nil
}

// MustNew is New for callers that already know the lengths match.
func MustNew(guess, answer string) Hint {
	h, err := New(guess, answer)
	if err != nil {
		panic(err)
	}
	return h
}

// FromMarks packs marks into a Hint. Marks past MaxLen are ignored.
func FromMarks(marks []Mark) Hint {
	if len(marks) > MaxLen {
		marks = marks[:MaxLen]
	}
	var h Hint
	for _, m := range marks {
		h.rank = h.rank*3 + uint64(m)
	}
	h.size = uint8(len(marks))
	return h
}

// Parse reads the compact form produced by Code: 'g' green, 'y' yellow,
// '-' gray. Case is ignored.
func Parse(s string) (Hint, error) {
	if len(s) > MaxLen {
		return Hint{}, fmt.Errorf("%w: %q", ErrTooLong, s)
	}
	marks := make([]Mark, 0, len(s))
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'g':
			marks = append(marks, Green)
		case 'y':
			marks = append(marks, Yellow)
		case '-', '.':
			marks = append(marks, Gray)
		default:
			return Hint{}, fmt.Errorf("invalid hint character %q in %q", c, s)
		}
	}
	return FromMarks(marks), nil
}

// Len is the number of letters the hint covers.
func (h Hint) Len() int {
	return int(h.size)
}

// Marks unpacks the hint, one mark per letter.
func (h Hint) Marks() []Mark {
	marks := make([]Mark, h.size)
	rank := h.rank
	for i := len(marks) - 1; i >= 0; i-- {
		marks[i] = Mark(rank % 3)
		rank /= 3
	}
	return marks
}

// Solved reports whether every letter is green.
func (h Hint) Solved() bool {
	for _, m := range h.Marks() {
		if m != Green {
			return false
		}
	}
	return true
}

// Code renders the hint as g/y/- characters, e.g. "-gg-y".
func (h Hint) Code() string {
	var b strings.Builder
	for _, m := range h.Marks() {
		switch m {
		case Green:
			b.WriteByte('g')
		case Yellow:
			b.WriteByte('y')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

func (h Hint) String() string {
	hintReplacer := strings.NewReplacer("-", "⬜", "y", "🟨", "g", "🟩")
	return hintReplacer.Replace(h.Code())
}

// ColoredWord displays a word with colored backgrounds based on the hint
func (h Hint) ColoredWord(word string) string {
	letters := []rune(word)
	if len(letters) != h.Len() {
		return word
	}

	// ANSI color codes
	const (
		reset    = "\033[0m"
		grayBg   = "\033[48;5;236m\033[38;5;255m" // gray background, white text
		yellowBg = "\033[43m\033[30m"             // yellow background, black text
		greenBg  = "\033[42m\033[30m"             // green background, black text
	)

	var result strings.Builder
	for i, m := range h.Marks() {
		switch m {
		case Gray:
			result.WriteString(grayBg)
		case Yellow:
			result.WriteString(yellowBg)
		case Green:
			result.WriteString(greenBg)
		}
		result.WriteRune(letters[i])
		result.WriteString(" ")
		result.WriteString(reset)
	}

	return result.String()
}
