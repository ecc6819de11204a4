// Package morse encodes practice text as International Morse code and
// computes the playback schedule used by the practice page.
package morse

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Dot  = '.'
	Dash = '-'

	// WordSeparator separates encoded words in Encode output
	WordSeparator = " / "
)

var codes = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// Code returns the dot/dash pattern for r and whether one exists.
// Lowercase letters are accepted.
func Code(r rune) (string, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	c, ok := codes[r]
	return c, ok
}

func upper(text string) string {
	return cases.Upper(language.Und).String(text)
}

// Encode converts text to Morse. Letters are separated by a single space and
// words by WordSeparator. Characters without a code are dropped.
func Encode(text string) string {
	var out []string
	for _, word := range strings.Fields(upper(text)) {
		var letters []string
		for _, r := range word {
			if c, ok := codes[r]; ok {
				letters = append(letters, c)
			}
		}
		if len(letters) > 0 {
			out = append(out, strings.Join(letters, " "))
		}
	}
	return strings.Join(out, WordSeparator)
}

// Tone is a single key-down interval relative to the start of playback
type Tone struct {
	Start  time.Duration
	Length time.Duration
}

// Schedule lays out the key-down intervals for text.
// A dot sounds for one unit and advances two, a dash sounds for three and
// advances four, a space advances four, and every character is followed by
// a further two units. It returns the tones and the total playback time.
func Schedule(text string, unit time.Duration) ([]Tone, time.Duration) {
	var (
		tones []Tone
		t     time.Duration
	)
	for _, r := range upper(text) {
		pattern, ok := codes[r]
		if r == ' ' {
			pattern, ok = " ", true
		}
		if ok {
			for _, sym := range pattern {
				switch sym {
				case Dot:
					tones = append(tones, Tone{Start: t, Length: unit})
					t += 2 * unit
				case Dash:
					tones = append(tones, Tone{Start: t, Length: 3 * unit})
					t += 4 * unit
				case ' ':
					t += 4 * unit
				}
			}
		}
		t += 2 * unit
	}
	return tones, t
}

// Duration returns the total playback time of text
func Duration(text string, unit time.Duration) time.Duration {
	_, d := Schedule(text, unit)
	return d
}
