// Package metamodel reads the JSON protocol meta-model into a raw document
// tree. It performs no resolution; see internal/codegen/resolver.
package metamodel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type node kinds understood by the resolver.
const (
	KindBase           = "base"
	KindReference      = "reference"
	KindArray          = "array"
	KindOr             = "or"
	KindAnd            = "and"
	KindMap            = "map"
	KindTuple          = "tuple"
	KindLiteral        = "literal"
	KindStringLiteral  = "stringLiteral"
	KindIntegerLiteral = "integerLiteral"
	KindBooleanLiteral = "booleanLiteral"
)

// NullTypeName is the base type name marking the null half of a nullable union.
const NullTypeName = "null"

type MetaData struct {
	Version string `json:"version"`
}

// Document is the top-level meta-model.
type Document struct {
	MetaData      MetaData       `json:"metaData"`
	Enumerations  []Enumeration  `json:"enumerations"`
	Structures    []Structure    `json:"structures"`
	Requests      []Request      `json:"requests"`
	Notifications []Notification `json:"notifications"`
}

type Structure struct {
	Name          string      `json:"name"`
	Documentation string      `json:"documentation,omitempty"`
	Extends       []*TypeNode `json:"extends,omitempty"`
	Mixins        []*TypeNode `json:"mixins,omitempty"`
	Properties    []Property  `json:"properties"`
}

type Property struct {
	Name          string    `json:"name"`
	Type          *TypeNode `json:"type"`
	Optional      bool      `json:"optional,omitempty"`
	Documentation string    `json:"documentation,omitempty"`
}

// TypeNode is one node of the meta-model type algebra.
//
// Element is set for arrays, Items for unions, tuples and intersections, and
// Value either holds the inline record of a literal (an object with
// properties) or the scalar of a string/integer/boolean literal.
type TypeNode struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name,omitempty"`
	Element *TypeNode       `json:"element,omitempty"`
	Items   []*TypeNode     `json:"items,omitempty"`
	Key     *TypeNode       `json:"key,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

// LiteralStructure decodes the inline record of a literal node.
func (t *TypeNode) LiteralStructure() (*Structure, error) {
	var s Structure
	if len(t.Value) == 0 {
		return &s, nil
	}
	if err := json.Unmarshal(t.Value, &s); err != nil {
		return nil, err
	}
	s.sanitizeDocs()
	return &s, nil
}

// StringValue returns the scalar of a string literal.
func (t *TypeNode) StringValue() (string, bool) {
	var s string
	if err := json.Unmarshal(t.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// Shape describes the node for diagnostics, naming the kinds the resolver
// does not translate.
func (t *TypeNode) Shape() string {
	if t == nil {
		return "missing type"
	}
	switch t.Kind {
	case KindAnd:
		return fmt.Sprintf("intersection of %d types", len(t.Items))
	case KindTuple:
		return fmt.Sprintf("tuple of %d items", len(t.Items))
	case KindMap:
		key := "?"
		if t.Key != nil && t.Key.Name != "" {
			key = t.Key.Name
		}
		return "map keyed by " + key
	case KindIntegerLiteral:
		return "integer literal " + string(t.Value)
	case KindBooleanLiteral:
		return "boolean literal " + string(t.Value)
	case "":
		return "type without kind"
	default:
		return "kind " + t.Kind
	}
}

// IsNull reports whether the node is the base type null.
func (t *TypeNode) IsNull() bool {
	return t != nil && t.Kind == KindBase && t.Name == NullTypeName
}

type Enumeration struct {
	Name                 string             `json:"name"`
	Type                 TypeNode           `json:"type"`
	Values               []EnumerationEntry `json:"values"`
	SupportsCustomValues bool               `json:"supportsCustomValues,omitempty"`
	Documentation        string             `json:"documentation,omitempty"`
}

type EnumerationEntry struct {
	Name          string          `json:"name"`
	Value         json.RawMessage `json:"value"`
	Documentation string          `json:"documentation,omitempty"`
}

// ValueText renders the entry value as plain text: strings unquoted, numbers
// as written. ok is false when there is no value.
func (e EnumerationEntry) ValueText() (string, bool) {
	raw := strings.TrimSpace(string(e.Value))
	if raw == "" || raw == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(e.Value, &s); err == nil {
		return s, true
	}
	return raw, true
}

type Request struct {
	Method string `json:"method"`
}

type Notification struct {
	Method string `json:"method"`
}
