package sourcemap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danspam/bundlemap/pkg/sourcemap"
)

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	doc, err := sourcemap.NewBuilder().Build("out.js", "")
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Version)
	assert.Equal(t, "out.js", doc.File)
	assert.Empty(t, doc.SourceRoot)
	assert.Empty(t, doc.Sources)
	assert.Empty(t, doc.Names)
	assert.Equal(t, "", doc.Mappings)
}

func TestBuildSingleMapping(t *testing.T) {
	t.Parallel()

	b := sourcemap.NewBuilder()
	b.Add(sourcemap.Mapping{Source: "a.js"})

	doc, err := b.Build("out.js", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js"}, doc.Sources)
	assert.Equal(t, "AAAA", doc.Mappings)
}

func TestBuildDeltaEncoding(t *testing.T) {
	t.Parallel()

	b := sourcemap.NewBuilder()
	b.Add(sourcemap.Mapping{GeneratedLine: 0, GeneratedColumn: 0, Source: "a.js", OriginalLine: 0, OriginalColumn: 0})
	b.Add(sourcemap.Mapping{GeneratedLine: 0, GeneratedColumn: 5, Source: "a.js", OriginalLine: 0, OriginalColumn: 5})
	b.Add(sourcemap.Mapping{GeneratedLine: 2, GeneratedColumn: 1, Source: "b.js", OriginalLine: 3, OriginalColumn: 2})

	doc, err := b.Build("out.js", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js", "b.js"}, doc.Sources)

	// Line 0: absolute [0,0,0,0] then deltas [5,0,0,5].
	// Line 1 empty. Line 2: generated column restarts absolute; the
	// source/original fields continue their running deltas.
	assert.Equal(t, "AAAA,KAAK;;CCGH", doc.Mappings)
}

func TestBuildNames(t *testing.T) {
	t.Parallel()

	b := sourcemap.NewBuilder()
	b.Add(sourcemap.Mapping{GeneratedColumn: 0, Source: "a.js", Name: "f"})
	b.Add(sourcemap.Mapping{GeneratedColumn: 3, Source: "a.js", OriginalColumn: 3})
	b.Add(sourcemap.Mapping{GeneratedColumn: 6, Source: "a.js", OriginalColumn: 6, Name: "g"})
	b.Add(sourcemap.Mapping{GeneratedColumn: 9, Source: "a.js", OriginalColumn: 9, Name: "f"})

	doc, err := b.Build("out.js", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"f", "g"}, doc.Names)

	decoded, err := sourcemap.DecodeDocument(doc)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assert.Equal(t, "f", decoded[0].Name)
	assert.Equal(t, "", decoded[1].Name)
	assert.Equal(t, "g", decoded[2].Name)
	assert.Equal(t, "f", decoded[3].Name)
}

func TestBuildUnordered(t *testing.T) {
	t.Parallel()

	t.Run("column regression within a line", func(t *testing.T) {
		t.Parallel()

		b := sourcemap.NewBuilder()
		b.Add(sourcemap.Mapping{GeneratedColumn: 5, Source: "a.js"})
		b.Add(sourcemap.Mapping{GeneratedColumn: 2, Source: "a.js"})

		_, err := b.Build("out.js", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sourcemap.ErrUnorderedMapping))
	})

	t.Run("line regression", func(t *testing.T) {
		t.Parallel()

		b := sourcemap.NewBuilder()
		b.Add(sourcemap.Mapping{GeneratedLine: 1, Source: "a.js"})
		b.Add(sourcemap.Mapping{GeneratedLine: 0, Source: "a.js"})

		_, err := b.Build("out.js", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sourcemap.ErrUnorderedMapping))
	})

	t.Run("equal columns are allowed", func(t *testing.T) {
		t.Parallel()

		b := sourcemap.NewBuilder()
		b.Add(sourcemap.Mapping{GeneratedColumn: 2, Source: "a.js"})
		b.Add(sourcemap.Mapping{GeneratedColumn: 2, Source: "a.js", OriginalColumn: 1})

		_, err := b.Build("out.js", "")
		require.NoError(t, err)
	})
}

// Decoding the emitted mappings string must reproduce the exact stream of
// mappings that was added, including large and backward original-position
// jumps (negative deltas).
func TestBuildDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	mappings := []sourcemap.Mapping{
		{GeneratedLine: 0, GeneratedColumn: 0, Source: "a.js", OriginalLine: 0, OriginalColumn: 0, Name: "f"},
		{GeneratedLine: 0, GeneratedColumn: 12, Source: "a.js", OriginalLine: 0, OriginalColumn: 14},
		{GeneratedLine: 0, GeneratedColumn: 13, Source: "b.js", OriginalLine: 900, OriginalColumn: 4},
		{GeneratedLine: 0, GeneratedColumn: 40, Source: "a.js", OriginalLine: 2, OriginalColumn: 1},
		{GeneratedLine: 3, GeneratedColumn: 0, Source: "c.js", OriginalLine: 12345, OriginalColumn: 6789, Name: "g"},
		{GeneratedLine: 3, GeneratedColumn: 7, Source: "a.js", OriginalLine: 1, OriginalColumn: 0, Name: "f"},
	}

	b := sourcemap.NewBuilder()
	for _, m := range mappings {
		b.Add(m)
	}

	doc, err := b.Build("out.js", "/src")
	require.NoError(t, err)
	assert.Equal(t, "/src", doc.SourceRoot)
	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, doc.Sources)

	decoded, err := sourcemap.DecodeDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, mappings, decoded)
}

func TestEncodeDecodeDocumentJSON(t *testing.T) {
	t.Parallel()

	b := sourcemap.NewBuilder()
	b.Add(sourcemap.Mapping{Source: "a.js"})
	b.SetGranularity(sourcemap.GranularitySegment)

	doc, err := b.Build("bundle.js", "")
	require.NoError(t, err)

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":3`)
	assert.Contains(t, string(data), `"x_granularity":"segment"`)

	back, err := sourcemap.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestEncodeEmptyListsAreArrays(t *testing.T) {
	t.Parallel()

	doc, err := sourcemap.NewBuilder().Build("out.js", "")
	require.NoError(t, err)

	data, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sources":[]`)
	assert.Contains(t, string(data), `"names":[]`)
	assert.NotContains(t, string(data), "null")
}
