// Package textpos translates flat byte offsets in immutable text to
// 0-based (line, column) positions and back.
//
// An Index is built once from a text buffer and is safe for concurrent
// read-only queries afterward. A single '\n' terminates a line; a '\r'
// preceding it counts as an ordinary character on the same line.
package textpos

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrOutOfRange indicates an offset past the end of the indexed text.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrInvalidPosition indicates a (line, column) pair that does not
	// exist in the indexed text.
	ErrInvalidPosition = errors.New("invalid position")
)

// Index maps byte offsets to line/column positions over one text buffer.
type Index struct {
	length int
	starts []int
}

// New builds an Index for text. The zero-length buffer yields a single
// empty line.
func New(text []byte) *Index {
	starts := make([]int, 1, 16)
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{length: len(text), starts: starts}
}

// Len returns the length of the indexed text in bytes.
func (ix *Index) Len() int { return ix.length }

// LineCount returns the number of lines in the indexed text. Text ending
// in a line terminator has a trailing empty line.
func (ix *Index) LineCount() int { return len(ix.starts) }

// LineStarts returns the offsets at which each line begins, in increasing
// order. Offset 0 is always first. The returned slice is a copy.
func (ix *Index) LineStarts() []int {
	starts := make([]int, len(ix.starts))
	copy(starts, ix.starts)
	return starts
}

// Position returns the 0-based line and column containing offset.
// The end-of-text offset is valid and maps to the position just past the
// last character. Fails with ErrOutOfRange otherwise.
func (ix *Index) Position(offset int) (line, column int, err error) {
	if offset < 0 || offset > ix.length {
		return 0, 0, fmt.Errorf("%w: offset %d not in [0, %d]", ErrOutOfRange, offset, ix.length)
	}

	// First line whose start is past the offset; the offset lives on the
	// line before it.
	line = sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1

	return line, offset - ix.starts[line], nil
}

// Offset is the inverse of Position. Fails with ErrInvalidPosition if line
// does not exist or column lies past the line's terminator.
func (ix *Index) Offset(line, column int) (int, error) {
	if line < 0 || line >= len(ix.starts) {
		return 0, fmt.Errorf("%w: line %d not in [0, %d)", ErrInvalidPosition, line, len(ix.starts))
	}
	if column < 0 || column > ix.lineSpan(line) {
		return 0, fmt.Errorf("%w: column %d not in [0, %d] on line %d",
			ErrInvalidPosition, column, ix.lineSpan(line), line)
	}
	return ix.starts[line] + column, nil
}

// lineSpan returns the maximum valid column on line: for interior lines
// that is the column of the terminating '\n', for the last line the
// end-of-text position.
func (ix *Index) lineSpan(line int) int {
	if line+1 < len(ix.starts) {
		return ix.starts[line+1] - 1 - ix.starts[line]
	}
	return ix.length - ix.starts[line]
}
