package sourcemap

import "fmt"

// Mapping is one correlation point between a generated position and an
// original position. Lines and columns are 0-based byte positions. Name
// is the original identifier at the position, or empty.
type Mapping struct {
	GeneratedLine   int
	GeneratedColumn int
	Source          string
	OriginalLine    int
	OriginalColumn  int
	Name            string
}

// Builder accumulates mappings and finalizes them into a Document.
// It is not safe for concurrent use; one builder serves one build.
type Builder struct {
	mappings    []Mapping
	granularity Granularity
}

// NewBuilder returns an empty builder at statement granularity.
func NewBuilder() *Builder {
	return &Builder{granularity: GranularityStatement}
}

// Add appends one mapping. Mappings must arrive in line-major,
// column-ascending generated order; Build verifies this.
func (b *Builder) Add(m Mapping) {
	b.mappings = append(b.mappings, m)
}

// SetGranularity records how fine-grained the accumulated mappings are.
func (b *Builder) SetGranularity(g Granularity) {
	b.granularity = g
}

// Len returns the number of accumulated mappings.
func (b *Builder) Len() int { return len(b.mappings) }

// Build finalizes the accumulated mappings into a Document. Sources and
// names are deduplicated preserving first-appearance order. Fails with
// ErrUnorderedMapping if the stream violates the ordering invariant.
// The builder may be reused only after the returned document is no
// longer being built from (it keeps no reference to builder state).
func (b *Builder) Build(file, sourceRoot string) (*Document, error) {
	if err := b.verifyOrder(); err != nil {
		return nil, err
	}

	sources, sourceIndex := dedupe(b.mappings, func(m Mapping) string { return m.Source })
	names, nameIndex := dedupe(b.mappings, func(m Mapping) string { return m.Name })

	doc := &Document{
		Version:    Version,
		File:       file,
		SourceRoot: sourceRoot,
		Sources:    sources,
		Names:      names,
		Mappings:   b.encode(sourceIndex, nameIndex),
	}
	if b.granularity != GranularityStatement {
		doc.Granularity = b.granularity
	}
	return doc, nil
}

func (b *Builder) verifyOrder() error {
	for i := 1; i < len(b.mappings); i++ {
		prev, cur := b.mappings[i-1], b.mappings[i]
		if cur.GeneratedLine < prev.GeneratedLine ||
			(cur.GeneratedLine == prev.GeneratedLine && cur.GeneratedColumn < prev.GeneratedColumn) {
			return fmt.Errorf("%w: mapping %d at %d:%d follows %d:%d",
				ErrUnorderedMapping, i,
				cur.GeneratedLine, cur.GeneratedColumn,
				prev.GeneratedLine, prev.GeneratedColumn)
		}
	}
	return nil
}

// encode produces the delta-encoded mappings string. Generated-column
// deltas reset at each line; source, original-line, original-column, and
// name deltas run continuously across the whole stream.
func (b *Builder) encode(sourceIndex, nameIndex map[string]int) string {
	var (
		out          []byte
		line         int
		prevGenCol   int
		prevSource   int
		prevOrigLine int
		prevOrigCol  int
		prevName     int
		firstOnLine  = true
	)

	for _, m := range b.mappings {
		for line < m.GeneratedLine {
			out = append(out, ';')
			line++
			prevGenCol = 0
			firstOnLine = true
		}
		if !firstOnLine {
			out = append(out, ',')
		}
		firstOnLine = false

		out = appendVLQ(out, m.GeneratedColumn-prevGenCol)
		prevGenCol = m.GeneratedColumn

		src := sourceIndex[m.Source]
		out = appendVLQ(out, src-prevSource)
		prevSource = src

		out = appendVLQ(out, m.OriginalLine-prevOrigLine)
		prevOrigLine = m.OriginalLine

		out = appendVLQ(out, m.OriginalColumn-prevOrigCol)
		prevOrigCol = m.OriginalColumn

		if m.Name != "" {
			name := nameIndex[m.Name]
			out = appendVLQ(out, name-prevName)
			prevName = name
		}
	}

	return string(out)
}

// dedupe builds a first-appearance-ordered list of the non-empty keys of
// the mappings, plus a lookup from key to index.
func dedupe(mappings []Mapping, key func(Mapping) string) ([]string, map[string]int) {
	list := []string{}
	index := make(map[string]int)
	for _, m := range mappings {
		k := key(m)
		if k == "" {
			continue
		}
		if _, ok := index[k]; !ok {
			index[k] = len(list)
			list = append(list, k)
		}
	}
	return list, index
}
