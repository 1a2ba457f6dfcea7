package textpos_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danspam/bundlemap/pkg/textpos"
)

func TestLineStarts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []int
	}{
		{name: "empty", text: "", want: []int{0}},
		{name: "single line no terminator", text: "abc", want: []int{0}},
		{name: "single line with terminator", text: "abc\n", want: []int{0, 4}},
		{name: "multiple lines", text: "ab\ncd\nef", want: []int{0, 3, 6}},
		{name: "crlf counts as one line", text: "ab\r\ncd", want: []int{0, 4}},
		{name: "blank lines", text: "\n\n", want: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ix := textpos.New([]byte(tt.text))
			assert.Equal(t, tt.want, ix.LineStarts())
			assert.Equal(t, len(tt.want), ix.LineCount())
		})
	}
}

func TestPosition(t *testing.T) {
	t.Parallel()

	text := []byte("ab\r\ncd\n\nxyz")
	ix := textpos.New(text)

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 0, wantCol: 0},
		{offset: 1, wantLine: 0, wantCol: 1},
		{offset: 2, wantLine: 0, wantCol: 2}, // the '\r'
		{offset: 3, wantLine: 0, wantCol: 3}, // the '\n'
		{offset: 4, wantLine: 1, wantCol: 0},
		{offset: 7, wantLine: 2, wantCol: 0}, // empty line
		{offset: 8, wantLine: 3, wantCol: 0},
		{offset: 11, wantLine: 3, wantCol: 3}, // end of text
	}

	for _, tt := range tests {
		line, col, err := ix.Position(tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestPositionOutOfRange(t *testing.T) {
	t.Parallel()

	ix := textpos.New([]byte("abc"))

	_, _, err := ix.Position(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrOutOfRange))

	_, _, err = ix.Position(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrOutOfRange))
}

func TestOffsetInvalidPosition(t *testing.T) {
	t.Parallel()

	ix := textpos.New([]byte("ab\ncd"))

	_, err := ix.Offset(2, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrInvalidPosition))

	_, err = ix.Offset(-1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrInvalidPosition))

	// Column past the line terminator.
	_, err = ix.Offset(0, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrInvalidPosition))

	// Column past end of text on the last line.
	_, err = ix.Offset(1, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, textpos.ErrInvalidPosition))
}

// Every valid offset must survive offset -> position -> offset, and every
// valid position must survive position -> offset -> position.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"a",
		"function f(){return 1;}\n",
		"ab\r\ncd\n\nxyz",
		"\n\n\n",
	}

	for _, text := range texts {
		ix := textpos.New([]byte(text))

		for offset := 0; offset <= len(text); offset++ {
			line, col, err := ix.Position(offset)
			require.NoError(t, err)

			back, err := ix.Offset(line, col)
			require.NoError(t, err)
			assert.Equal(t, offset, back, "text %q offset %d", text, offset)
		}
	}
}
