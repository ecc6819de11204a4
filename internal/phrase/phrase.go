// Package phrase selects the practice text served to Morse learners.
package phrase

import (
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is the requested practice granularity
type Mode string

const (
	ModeWord      Mode = "word"
	ModeSentence  Mode = "sentence"
	ModeParagraph Mode = "paragraph"
)

const (
	Sentence  = "HELLO WORLD"
	Paragraph = "HELLO WORLD. MORSE CODE IS FUN TO LEARN."
	// ErrorText is returned in place of a failure for unknown modes
	ErrorText = "ERROR"
)

var words = []string{"HELLO", "WORLD", "MORSE", "CODE", "LEARN", "AUDIO", "SIGNAL"}

// Words returns a copy of the single-word vocabulary
func Words() []string {
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// ParseMode reports whether s names a known mode
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeWord, ModeSentence, ModeParagraph:
		return m, true
	}
	return Mode(s), false
}

// Selector picks practice text. IntN must return a value in [0, n) and be
// safe for concurrent use.
type Selector struct {
	IntN func(n int) int
}

// NewSelector returns a Selector backed by the global math/rand source
func NewSelector() *Selector {
	return &Selector{IntN: rand.Intn}
}

var defaultSelector = NewSelector()

// Select returns the practice text for mode using the default Selector
func Select(mode string) string {
	return defaultSelector.Select(mode)
}

// Select returns the uppercased practice text for mode.
// Unknown modes yield ErrorText.
func (s *Selector) Select(mode string) string {
	var text string
	switch Mode(mode) {
	case ModeWord:
		text = words[s.IntN(len(words))]
	case ModeSentence:
		text = Sentence
	case ModeParagraph:
		text = Paragraph
	default:
		text = ErrorText
	}
	// Casers keep state and must not be shared between goroutines.
	return cases.Upper(language.Und).String(text)
}
