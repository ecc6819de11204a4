package phrase

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFixedModes(t *testing.T) {
	testCases := []struct {
		mode string
		want string
	}{
		{"sentence", "HELLO WORLD"},
		{"paragraph", "HELLO WORLD. MORSE CODE IS FUN TO LEARN."},
		{"", "ERROR"},
		{"foo", "ERROR"},
		{"bogus", "ERROR"},
		{"WORD", "ERROR"},
		{"Sentence", "ERROR"},
		{" word", "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			for i := 0; i < 10; i++ {
				assert.Equal(t, tc.want, Select(tc.mode))
			}
		})
	}
}

func TestSelectWordWithinList(t *testing.T) {
	allowed := make(map[string]bool)
	for _, w := range Words() {
		allowed[w] = true
	}

	seen := make(map[string]int)
	for i := 0; i < 1000; i++ {
		got := Select("word")
		require.True(t, allowed[got], "unexpected word %q", got)
		assert.Equal(t, strings.ToUpper(got), got)
		seen[got]++
	}

	// With 1000 draws over 7 words the chance of missing one is ~1e-67.
	assert.Len(t, seen, len(allowed))
}

func TestSelectorPinned(t *testing.T) {
	for i, want := range Words() {
		idx := i
		s := &Selector{IntN: func(n int) int {
			require.Equal(t, 7, n)
			return idx
		}}
		assert.Equal(t, want, s.Select("word"))
	}
}

func TestSelectConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				assert.NotEmpty(t, Select("word"))
				assert.Equal(t, Sentence, Select("sentence"))
			}
		}()
	}
	wg.Wait()
}

func TestWordsIsCopy(t *testing.T) {
	w := Words()
	w[0] = "CHANGED"
	assert.Equal(t, "HELLO", Words()[0])
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"word", "sentence", "paragraph"} {
		m, ok := ParseMode(s)
		assert.True(t, ok)
		assert.Equal(t, Mode(s), m)
	}
	_, ok := ParseMode("letters")
	assert.False(t, ok)
}
