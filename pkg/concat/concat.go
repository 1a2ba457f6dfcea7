// Package concat joins ordered JavaScript resources into one combined
// buffer while keeping a per-segment origin table, so positions in the
// combined buffer can be translated back to positions in the original
// files after minification.
//
// A source-directive marker line precedes each resource's content. The
// marker uses the legal-comment form (/*! ... */) so minifiers that
// preserve legal comments keep the attribution visible in their output.
package concat

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/danspam/bundlemap/pkg/textpos"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrResourceUnavailable indicates a named resource could not be read.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrUnsupportedResource indicates a dynamically generated resource.
	// Dynamic content has no stable identity to map back to.
	ErrUnsupportedResource = errors.New("unsupported resource")
)

// SourceFile is one input resource. Immutable once read.
type SourceFile struct {
	// Name identifies the resource in the emitted source map.
	Name string

	// Content is the resource's raw text.
	Content []byte

	// Dynamic marks content generated at request time. Combine rejects
	// dynamic resources.
	Dynamic bool
}

// ReadSourceFile loads a static resource from path under the given map
// name. Fails with ErrResourceUnavailable if the file cannot be read.
func ReadSourceFile(name, path string) (SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, path, err)
	}
	return SourceFile{Name: name, Content: content}, nil
}

// Segment attributes a contiguous range of the combined buffer to one
// source file. Segments are contiguous in input order and never overlap.
type Segment struct {
	// Source indexes into Result.Sources.
	Source int

	// Start is the offset of the resource's first content byte in the
	// combined buffer. The directive line before it belongs to no segment.
	Start int

	// Length is the resource's content length in bytes.
	Length int
}

// Result holds the combined buffer and the origin table for one Combine
// call. Read-only after creation.
type Result struct {
	// Buffer is the combined text: directive line, content, and a line
	// separator for each resource, in input order.
	Buffer []byte

	// Sources lists resource names in input order.
	Sources []string

	// Segments attributes buffer ranges to sources, in input order.
	Segments []Segment

	indexes []*textpos.Index
}

// Directive returns the marker line content for a resource name, without
// the trailing line terminator.
func Directive(name string) string {
	return "/*! bundlemap:" + name + " */"
}

// Combine joins the ordered resources into a single buffer. Each
// resource keeps its own coordinate space: translation back subtracts
// the segment start, so the directive line is not part of it. Output is
// byte-deterministic for identical input.
func Combine(resources []SourceFile) (*Result, error) {
	res := &Result{
		Sources:  make([]string, 0, len(resources)),
		Segments: make([]Segment, 0, len(resources)),
		indexes:  make([]*textpos.Index, 0, len(resources)),
	}

	var buf bytes.Buffer
	for i, sf := range resources {
		if sf.Dynamic {
			return nil, fmt.Errorf("%w: %s is dynamically generated", ErrUnsupportedResource, sf.Name)
		}
		if sf.Content == nil {
			return nil, fmt.Errorf("%w: %s has no content", ErrResourceUnavailable, sf.Name)
		}

		buf.WriteString(Directive(sf.Name))
		buf.WriteByte('\n')

		start := buf.Len()
		buf.Write(sf.Content)

		// Line separator so the next directive starts a fresh line.
		if len(sf.Content) == 0 || sf.Content[len(sf.Content)-1] != '\n' {
			buf.WriteByte('\n')
		}

		res.Sources = append(res.Sources, sf.Name)
		res.Segments = append(res.Segments, Segment{
			Source: i,
			Start:  start,
			Length: len(sf.Content),
		})
		res.indexes = append(res.indexes, textpos.New(sf.Content))
	}

	res.Buffer = buf.Bytes()
	return res, nil
}

// Resolve translates a combined-buffer offset to a source index and a
// 0-based line/column in that source's own coordinate space. Offsets on
// directive or separator lines belong to no source; ok is false there.
func (r *Result) Resolve(offset int) (source, line, column int, ok bool) {
	// Last segment starting at or before offset.
	i := sort.Search(len(r.Segments), func(i int) bool {
		return r.Segments[i].Start > offset
	}) - 1
	if i < 0 {
		return 0, 0, 0, false
	}

	seg := r.Segments[i]
	if offset >= seg.Start+seg.Length {
		return 0, 0, 0, false
	}

	line, column, err := r.indexes[seg.Source].Position(offset - seg.Start)
	if err != nil {
		return 0, 0, 0, false
	}
	return seg.Source, line, column, true
}
