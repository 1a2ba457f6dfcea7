package bundle

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/danspam/bundlemap/pkg/concat"
	"github.com/danspam/bundlemap/pkg/minify"
	"github.com/danspam/bundlemap/pkg/sourcemap"
	"github.com/danspam/bundlemap/pkg/textpos"
)

// corrEvent is one raw correlation reported by the minifier. Events are
// buffered because generated line/column positions can only be computed
// once the full output buffer exists.
type corrEvent struct {
	original  int
	generated int
	name      string
}

type eventSink struct {
	events []corrEvent
}

func (s *eventSink) Correlate(original, generated int) {
	s.events = append(s.events, corrEvent{original: original, generated: generated})
}

func (s *eventSink) CorrelateName(original, generated int, name string) {
	s.events = append(s.events, corrEvent{original: original, generated: generated, name: name})
}

// minifyAndMap minifies the combined buffer and feeds position mappings
// to the builder. Minifiers that report per-token correlations get
// statement-granularity maps; for the rest the combined buffer's
// directive markers are located in the output and one mapping is emitted
// per segment, with the degraded granularity flagged on the builder.
func minifyAndMap(
	ctx context.Context,
	m minify.Minifier,
	combined *concat.Result,
	opts minify.Options,
	builder *sourcemap.Builder,
) ([]byte, error) {
	if cm, ok := m.(minify.Correlating); ok {
		sink := &eventSink{}
		out, err := cm.MinifyWithSink(ctx, combined.Buffer, opts, sink)
		if err != nil {
			return nil, err
		}
		if err := replayEvents(combined, out, sink.events, builder); err != nil {
			return nil, err
		}
		return out, nil
	}

	out, err := m.Minify(ctx, combined.Buffer, opts)
	if err != nil {
		return nil, err
	}
	mapSegmentMarkers(combined, out, builder)
	builder.SetGranularity(sourcemap.GranularitySegment)
	return out, nil
}

// replayEvents translates buffered correlations into mappings: original
// offsets through the segment table into per-source positions, generated
// offsets through an index over the minified output.
func replayEvents(combined *concat.Result, out []byte, events []corrEvent, builder *sourcemap.Builder) error {
	outIndex := textpos.New(out)

	// Minifiers emit in generated order already; stable-sort to keep the
	// builder's ordering invariant safe against sloppy implementations.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].generated < events[j].generated
	})

	for _, ev := range events {
		source, origLine, origCol, ok := combined.Resolve(ev.original)
		if !ok {
			// Token originated on a directive or separator line.
			continue
		}

		genLine, genCol, err := outIndex.Position(ev.generated)
		if err != nil {
			return fmt.Errorf("correlate generated offset %d: %w", ev.generated, err)
		}

		builder.Add(sourcemap.Mapping{
			GeneratedLine:   genLine,
			GeneratedColumn: genCol,
			Source:          combined.Sources[source],
			OriginalLine:    origLine,
			OriginalColumn:  origCol,
			Name:            ev.name,
		})
	}
	return nil
}

// mapSegmentMarkers emits one mapping per surviving directive marker,
// correlating the start of each segment's minified content with line 0,
// column 0 of its source. Markers the minifier stripped yield no mapping.
func mapSegmentMarkers(combined *concat.Result, out []byte, builder *sourcemap.Builder) {
	outIndex := textpos.New(out)

	offset := 0
	for _, name := range combined.Sources {
		marker := []byte(concat.Directive(name))

		idx := bytes.Index(out[offset:], marker)
		if idx < 0 {
			continue
		}
		offset += idx + len(marker)

		// The segment's content starts at the next non-blank byte.
		start := offset
		for start < len(out) && (out[start] == ' ' || out[start] == '\n' || out[start] == '\r' || out[start] == '\t') {
			start++
		}
		if start >= len(out) {
			break
		}

		// start is inside the buffer, so Position cannot fail.
		genLine, genCol, _ := outIndex.Position(start)
		builder.Add(sourcemap.Mapping{
			GeneratedLine:   genLine,
			GeneratedColumn: genCol,
			Source:          name,
		})
	}
}
