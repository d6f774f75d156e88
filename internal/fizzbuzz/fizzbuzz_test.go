package fizzbuzz

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		number   int
		response string
		want     bool
	}{
		{"three is fizz", 3, "fizz", true},
		{"five is buzz", 5, "buzz", true},
		{"fifteen is fizzbuzz", 15, "fizzbuzz", true},
		{"fifty is buzz", 50, "buzz", true},
		{"four accepts digits", 4, "4", true},
		{"four rejects word", 4, "five", false},
		{"fifteen rejects fizz", 15, "fizz", false},
		{"fifteen rejects buzz", 15, "buzz", false},
		{"three rejects buzz", 3, "buzz", false},
		{"five rejects fizz", 5, "fizz", false},
		{"uppercase is not lowered here", 3, "Fizz", false},
		{"zero is fizzbuzz", 0, "fizzbuzz", true},
		{"zero rejects digits", 0, "0", false},
		{"negative fifteen", -15, "fizzbuzz", true},
		{"negative three", -3, "fizz", true},
		{"negative five", -5, "buzz", true},
		{"negative seven accepts digits", -7, "7", true},
		{"empty response", 7, "", false},
		{"signed digits rejected", 7, "-7", false},
		{"spaces rejected", 7, " 7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Verify(tt.number, tt.response))
		})
	}
}

// The digits of a plain-number answer are never compared to the input.
func TestVerify_DigitsNotComparedToNumber(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 4, 7, 8, 11, 98, -1} {
		assert.True(t, Verify(n, "7"), "n=%d", n)
		assert.False(t, Verify(n, "seven"), "n=%d", n)
	}
}

func TestVerify_RandomizedProperties(t *testing.T) {
	t.Parallel()
	f := gofakeit.New(0)

	for i := 0; i < 500; i++ {
		n := f.IntRange(-100000, 100000)
		word := f.Word()
		switch {
		case n%15 == 0:
			require.True(t, Verify(n, "fizzbuzz"), "n=%d", n)
			require.False(t, Verify(n, "fizz"), "n=%d", n)
			require.False(t, Verify(n, "buzz"), "n=%d", n)
		case n%3 == 0:
			require.True(t, Verify(n, "fizz"), "n=%d", n)
			if word != Fizz {
				require.False(t, Verify(n, word), "n=%d word=%q", n, word)
			}
		case n%5 == 0:
			require.True(t, Verify(n, "buzz"), "n=%d", n)
			require.False(t, Verify(n, "fizzbuzz"), "n=%d", n)
		default:
			require.True(t, Verify(n, "7"), "n=%d", n)
			require.False(t, Verify(n, "seven"), "n=%d", n)
		}
		// The canonical answer of any number is always accepted.
		require.True(t, Verify(n, Answer(abs(n))), "n=%d", n)
	}
}

func TestAnswer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{1, "1"},
		{3, "fizz"},
		{5, "buzz"},
		{15, "fizzbuzz"},
		{30, "fizzbuzz"},
		{98, "98"},
		{-9, "fizz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Answer(tt.n), "Answer(%d)", tt.n)
	}
}

func TestIsAllDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"0", true},
		{"42", true},
		{"007", true},
		{"4.2", false},
		{"-4", false},
		{"+4", false},
		{"4 ", false},
		{"fizz", false},
		{"١٢", false}, // non-ASCII digits
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAllDigits(tt.in), "IsAllDigits(%q)", tt.in)
	}
}

func TestTryParseInt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 15 ", 15, true},
		{"-4", -4, true},
		{"", 0, false},
		{"abc", 0, false},
		{"4.5", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := TryParseInt(tt.in)
		assert.Equal(t, tt.wantOK, ok, "TryParseInt(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "TryParseInt(%q)", tt.in)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
