package morse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"SOS", "... --- ..."},
		{"sos", "... --- ..."},
		{"E", "."},
		{"HELLO WORLD", ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."},
		{"CODE", "-.-. --- -.. ."},
		{"", ""},
		{"   ", ""},
		{"HI. YOU", ".... .. / -.-- --- ..-"},
		{"... A", ".-"},
		{"SIGNAL 73", "... .. --. -. .- .-.. / --... ...--"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Encode(tc.in))
		})
	}
}

func TestEncodeParagraphWordCount(t *testing.T) {
	got := Encode("HELLO WORLD. MORSE CODE IS FUN TO LEARN.")
	assert.Equal(t, 8, len(strings.Split(got, WordSeparator)))
	assert.NotContains(t, got, "..-.-.-") // no code for '.'
}

func TestCode(t *testing.T) {
	c, ok := Code('a')
	require.True(t, ok)
	assert.Equal(t, ".-", c)

	_, ok = Code('!')
	assert.False(t, ok)
}

func TestScheduleSingleDot(t *testing.T) {
	unit := 100 * time.Millisecond
	tones, total := Schedule("E", unit)
	require.Len(t, tones, 1)
	assert.Equal(t, Tone{Start: 0, Length: unit}, tones[0])
	assert.Equal(t, 4*unit, total)
}

func TestScheduleDashAndSpace(t *testing.T) {
	unit := 10 * time.Millisecond
	// T: dash (4) + char gap (2) = 6; space: 4 + 2 = 6; E: 2 + 2 = 4
	tones, total := Schedule("T E", unit)
	require.Len(t, tones, 2)
	assert.Equal(t, Tone{Start: 0, Length: 3 * unit}, tones[0])
	assert.Equal(t, Tone{Start: 12 * unit, Length: unit}, tones[1])
	assert.Equal(t, 16*unit, total)
}

func TestScheduleUnknownCharAdvances(t *testing.T) {
	unit := time.Millisecond
	tones, total := Schedule(".", unit)
	assert.Empty(t, tones)
	assert.Equal(t, 2*unit, total)
	assert.Equal(t, total, Duration(".", unit))
}
