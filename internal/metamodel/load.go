package metamodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrMalformedInput is returned when the meta-model is not valid JSON or lacks
// one of the required top-level sections.
var ErrMalformedInput = errors.New("malformed meta-model")

var requiredSections = []string{"enumerations", "structures", "requests", "notifications"}

var nonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// SanitizeDoc drops every rune outside 7-bit ASCII from documentation text.
// Identifiers and values are never passed through it.
func SanitizeDoc(doc string) string {
	out, _, err := transform.String(nonASCII, doc)
	if err != nil {
		return doc
	}
	return out
}

func (s *Structure) sanitizeDocs() {
	s.Documentation = SanitizeDoc(s.Documentation)
	for i := range s.Properties {
		s.Properties[i].Documentation = SanitizeDoc(s.Properties[i].Documentation)
	}
}

func (e *Enumeration) sanitizeDocs() {
	e.Documentation = SanitizeDoc(e.Documentation)
	for i := range e.Values {
		e.Values[i].Documentation = SanitizeDoc(e.Values[i].Documentation)
	}
}

// Load parses a meta-model document. Invalid UTF-8 decodes to U+FFFD; only
// documentation is reduced to ASCII.
func Load(raw []byte) (*Document, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	for _, key := range requiredSections {
		if _, ok := sections[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedInput, key)
		}
	}

	doc := &Document{}
	if md, ok := sections["metaData"]; ok {
		if err := json.Unmarshal(md, &doc.MetaData); err != nil {
			return nil, fmt.Errorf("%w: metaData: %v", ErrMalformedInput, err)
		}
	}
	targets := map[string]any{
		"enumerations":  &doc.Enumerations,
		"structures":    &doc.Structures,
		"requests":      &doc.Requests,
		"notifications": &doc.Notifications,
	}
	for _, key := range requiredSections {
		if err := json.Unmarshal(sections[key], targets[key]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, key, err)
		}
	}
	for i := range doc.Structures {
		doc.Structures[i].sanitizeDocs()
	}
	for i := range doc.Enumerations {
		doc.Enumerations[i].sanitizeDocs()
	}
	return doc, nil
}

// ReadFile loads the meta-model stored at path.
func ReadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meta-model: %w", err)
	}
	return Load(raw)
}
