package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const cyan = "\x1b[36m"
const reset = "\x1b[0m"

func TestVisualWidth_IgnoresStyleCodes(t *testing.T) {
	assert.Equal(t, 5, VisualWidth(cyan+"hello"+reset))
	assert.Equal(t, 4, VisualWidth("日本"))
	assert.Equal(t, 0, VisualWidth(""))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 5, "abcd…"},
		{"zero", "abc", 0, ""},
		{"one", "abc", 1, "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, VisualWidth(got), tt.width)
		})
	}
}

func TestTruncate_Styled(t *testing.T) {
	got := Truncate(cyan+"abcdefgh"+reset, 5)
	assert.Equal(t, "abcd…", Strip(got))
	assert.Contains(t, got, cyan)
}

func TestPadAndCenter(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, " ab  ", Center("ab", 5))
	assert.Equal(t, 5, VisualWidth(PadRight(cyan+"ab"+reset, 5)))
	assert.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}

func TestLinesAndMaxWidth(t *testing.T) {
	assert.Nil(t, Lines(""))
	lines := Lines("a\nbcd\n")
	assert.Equal(t, []string{"a", "bcd"}, lines)
	assert.Equal(t, 3, MaxWidth(lines))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"the quick", "brown fox"}, Wrap("the quick brown fox", 10))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, Wrap("abcdefghij", 4))
	assert.Equal(t, []string{"a", "", "b"}, Wrap("a\n\nb", 4))
}
