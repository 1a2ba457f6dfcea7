package concat_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danspam/bundlemap/pkg/concat"
)

func twoFiles() []concat.SourceFile {
	return []concat.SourceFile{
		{Name: "a.js", Content: []byte("function f(){return 1;}")},
		{Name: "b.js", Content: []byte("function g(){return 2;}")},
	}
}

func TestCombine(t *testing.T) {
	t.Parallel()

	res, err := concat.Combine(twoFiles())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js", "b.js"}, res.Sources)
	require.Len(t, res.Segments, 2)

	// A directive line precedes each resource's content.
	want := concat.Directive("a.js") + "\n" +
		"function f(){return 1;}\n" +
		concat.Directive("b.js") + "\n" +
		"function g(){return 2;}\n"
	assert.Equal(t, want, string(res.Buffer))

	// Segments cover exactly the resource content, in input order.
	for i, sf := range twoFiles() {
		seg := res.Segments[i]
		assert.Equal(t, i, seg.Source)
		assert.Equal(t, string(sf.Content), string(res.Buffer[seg.Start:seg.Start+seg.Length]))
	}
	assert.Less(t, res.Segments[0].Start, res.Segments[1].Start)
}

func TestCombineDeterministic(t *testing.T) {
	t.Parallel()

	first, err := concat.Combine(twoFiles())
	require.NoError(t, err)
	second, err := concat.Combine(twoFiles())
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first.Buffer, second.Buffer))
}

func TestCombineOrderMatters(t *testing.T) {
	t.Parallel()

	files := twoFiles()
	reversed := []concat.SourceFile{files[1], files[0]}

	ab, err := concat.Combine(files)
	require.NoError(t, err)
	ba, err := concat.Combine(reversed)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(ab.Buffer, ba.Buffer))
	assert.Equal(t, []string{"b.js", "a.js"}, ba.Sources)
}

func TestCombineRejectsDynamic(t *testing.T) {
	t.Parallel()

	files := []concat.SourceFile{
		{Name: "a.js", Content: []byte("var a;")},
		{Name: "live.js", Content: []byte("var b;"), Dynamic: true},
	}

	_, err := concat.Combine(files)
	require.Error(t, err)
	assert.True(t, errors.Is(err, concat.ErrUnsupportedResource))
	assert.Contains(t, err.Error(), "live.js")
}

func TestCombinePreservesTrailingNewline(t *testing.T) {
	t.Parallel()

	files := []concat.SourceFile{
		{Name: "a.js", Content: []byte("var a;\n")},
		{Name: "b.js", Content: []byte("var b;")},
	}

	res, err := concat.Combine(files)
	require.NoError(t, err)

	// No doubled separator after a file that already ends in one.
	assert.NotContains(t, string(res.Buffer), "\n\n")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	res, err := concat.Combine(twoFiles())
	require.NoError(t, err)

	// Directive line offsets belong to no source.
	_, _, _, ok := res.Resolve(0)
	assert.False(t, ok)

	// First content byte of a.js is line 0, column 0 of a.js.
	src, line, col, ok := res.Resolve(res.Segments[0].Start)
	require.True(t, ok)
	assert.Equal(t, 0, src)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	// Interior of b.js: "return" starts 13 bytes in.
	src, line, col, ok = res.Resolve(res.Segments[1].Start + 13)
	require.True(t, ok)
	assert.Equal(t, 1, src)
	assert.Equal(t, 0, line)
	assert.Equal(t, 13, col)

	// Separator byte after a.js content is unattributed.
	_, _, _, ok = res.Resolve(res.Segments[0].Start + res.Segments[0].Length)
	assert.False(t, ok)
}

func TestResolveMultiline(t *testing.T) {
	t.Parallel()

	files := []concat.SourceFile{
		{Name: "a.js", Content: []byte("var a;\nvar b;\n")},
		{Name: "b.js", Content: []byte("var c;\nvar d;\n")},
	}

	res, err := concat.Combine(files)
	require.NoError(t, err)

	// "var d;" starts 7 bytes into b.js, on its own line 1. The directive
	// lines must not shift the per-resource line numbering.
	src, line, col, ok := res.Resolve(res.Segments[1].Start + 7)
	require.True(t, ok)
	assert.Equal(t, 1, src)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
}

func TestReadSourceFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.js")
		require.NoError(t, os.WriteFile(path, []byte("var a;"), 0o644))

		sf, err := concat.ReadSourceFile("a.js", path)
		require.NoError(t, err)
		assert.Equal(t, "a.js", sf.Name)
		assert.Equal(t, "var a;", string(sf.Content))
		assert.False(t, sf.Dynamic)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := concat.ReadSourceFile("a.js", filepath.Join(t.TempDir(), "absent.js"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, concat.ErrResourceUnavailable))
	})
}
