// Package sourcemap builds, encodes, and decodes Source Map v3 documents.
//
// A Builder accumulates position mappings emitted while minifying and
// finalizes them into a Document: sources and names deduplicated into
// index lists, the mapping stream delta-encoded as base-64 VLQ segments.
// DecodeDocument reverses the encoding, primarily for verification and
// tooling.
package sourcemap

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the only source map revision this package produces.
const Version = 3

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrUnorderedMapping indicates mappings were added out of the
	// required line-major, column-ascending order. This is a bug in the
	// component feeding the builder, not a caller configuration error.
	ErrUnorderedMapping = errors.New("unordered mapping")

	// ErrBadMappings indicates a mappings string that does not decode.
	ErrBadMappings = errors.New("malformed mappings")

	// ErrIndexOutOfBounds indicates a decoded mapping referencing a
	// source or name index outside the document's lists.
	ErrIndexOutOfBounds = errors.New("mapping index out of bounds")
)

// Granularity describes how fine-grained a document's mappings are.
type Granularity string

const (
	// GranularityStatement marks per-token/statement mappings, the
	// normal mode. It is omitted from serialized documents.
	GranularityStatement Granularity = "statement"

	// GranularitySegment marks degraded one-mapping-per-input-file
	// documents, produced when the minifier cannot report per-token
	// correlations. Serialized so consumers can tell the difference.
	GranularitySegment Granularity = "segment"
)

// Document is a Source Map v3 document. The x_granularity field is an
// extension (v3 reserves the x_ prefix for them) flagging coarse maps.
type Document struct {
	Version     int         `json:"version"`
	File        string      `json:"file"`
	SourceRoot  string      `json:"sourceRoot,omitempty"`
	Sources     []string    `json:"sources"`
	Names       []string    `json:"names"`
	Mappings    string      `json:"mappings"`
	Granularity Granularity `json:"x_granularity,omitempty"`
}

// Encode serializes the document as UTF-8 JSON without a trailing newline.
func (d *Document) Encode() ([]byte, error) {
	// null in sources/names would violate the schema.
	if d.Sources == nil {
		d.Sources = []string{}
	}
	if d.Names == nil {
		d.Names = []string{}
	}

	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode source map: %w", err)
	}
	return data, nil
}

// Decode parses a serialized document and validates its version.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode source map: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("decode source map: unsupported version %d", doc.Version)
	}
	return &doc, nil
}
