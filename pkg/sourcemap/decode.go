package sourcemap

import (
	"fmt"
	"strings"
)

// DecodeDocument decodes a document's mappings string back into the
// Mapping stream that produced it. Segments carrying only a generated
// column (no source fields) are returned with empty Source; the v3
// format permits them even though Builder never emits them.
func DecodeDocument(doc *Document) ([]Mapping, error) {
	var (
		mappings     []Mapping
		prevSource   int
		prevOrigLine int
		prevOrigCol  int
		prevName     int
	)

	for line, group := range strings.Split(doc.Mappings, ";") {
		prevGenCol := 0
		if group == "" {
			continue
		}
		for _, seg := range strings.Split(group, ",") {
			fields, err := decodeSegment(seg)
			if err != nil {
				return nil, err
			}

			m := Mapping{GeneratedLine: line}

			prevGenCol += fields[0]
			m.GeneratedColumn = prevGenCol

			if len(fields) >= 4 {
				prevSource += fields[1]
				if prevSource < 0 || prevSource >= len(doc.Sources) {
					return nil, fmt.Errorf("%w: source %d of %d",
						ErrIndexOutOfBounds, prevSource, len(doc.Sources))
				}
				m.Source = doc.Sources[prevSource]

				prevOrigLine += fields[2]
				m.OriginalLine = prevOrigLine

				prevOrigCol += fields[3]
				m.OriginalColumn = prevOrigCol
			}

			if len(fields) == 5 {
				prevName += fields[4]
				if prevName < 0 || prevName >= len(doc.Names) {
					return nil, fmt.Errorf("%w: name %d of %d",
						ErrIndexOutOfBounds, prevName, len(doc.Names))
				}
				m.Name = doc.Names[prevName]
			}

			mappings = append(mappings, m)
		}
	}

	return mappings, nil
}

// decodeSegment decodes one comma-delimited segment into its 1, 4, or 5
// VLQ fields.
func decodeSegment(seg string) ([]int, error) {
	fields := make([]int, 0, 5)
	for len(seg) > 0 {
		value, n, err := decodeVLQ(seg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)
		seg = seg[n:]
	}

	switch len(fields) {
	case 1, 4, 5:
		return fields, nil
	default:
		return nil, fmt.Errorf("%w: segment has %d fields", ErrBadMappings, len(fields))
	}
}
