package resolver

import (
	"sort"
	"strings"

	"github.com/Alia5/lspgen/internal/codegen/common"
	"github.com/Alia5/lspgen/internal/codegen/model"
	"github.com/Alia5/lspgen/internal/codegen/types"
	"github.com/Alia5/lspgen/internal/metamodel"
)

// UnionKeySeparator joins member keys of a union lookup key.
const UnionKeySeparator = "|"

// UnionKey is the lookup key of a union in the resolution table: the member
// keys, sorted and joined with UnionKeySeparator. References and base types
// contribute their name, arrays their element key suffixed with "[]", string
// literals "string", inline literals "literal" and nested unions their own key
// in parentheses.
func UnionKey(items []*metamodel.TypeNode) string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, memberKey(it))
	}
	sort.Strings(keys)
	return strings.Join(keys, UnionKeySeparator)
}

func memberKey(n *metamodel.TypeNode) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case metamodel.KindBase, metamodel.KindReference:
		return n.Name
	case metamodel.KindArray:
		return memberKey(n.Element) + "[]"
	case metamodel.KindStringLiteral:
		return "string"
	case metamodel.KindLiteral:
		return "literal"
	case metamodel.KindOr:
		return "(" + UnionKey(n.Items) + ")"
	default:
		return n.Kind
	}
}

// nullableOther returns the non-null member of a two-member union with null.
func nullableOther(n *metamodel.TypeNode) (*metamodel.TypeNode, bool) {
	if n == nil || n.Kind != metamodel.KindOr || len(n.Items) != 2 {
		return nil, false
	}
	switch {
	case n.Items[0].IsNull() && !n.Items[1].IsNull():
		return n.Items[1], true
	case n.Items[1].IsNull() && !n.Items[0].IsNull():
		return n.Items[0], true
	}
	return nil, false
}

func (r *Resolver) resolveProperty(owner string, p *metamodel.Property) *model.Property {
	subject := owner + "." + p.Name
	prop := &model.Property{Name: p.Name, Documentation: p.Documentation}

	node := p.Type
	nullable := false
	if other, ok := nullableOther(node); ok {
		nullable = true
		node = other
	}

	var name string
	array := false
	if node == nil {
		r.record(UnrecognizedTypeShape, subject, node.Shape())
	} else {
		switch node.Kind {
		case metamodel.KindLiteral:
			name = r.synthesize(owner, p.Name, node)
		case metamodel.KindStringLiteral:
			name = "string"
			if r.cfg.StringLiteralConstants {
				if v, ok := node.StringValue(); ok {
					lit := common.CppString(v)
					prop.LiteralValue = &lit
				}
			}
		case metamodel.KindOr:
			name = r.unionName(subject, node)
		case metamodel.KindArray:
			array = true
			name = r.elementName(subject, node.Element)
		case metamodel.KindBase, metamodel.KindReference:
			name = node.Name
		default:
			r.record(UnrecognizedTypeShape, subject, node.Shape())
		}
	}

	if name == "" {
		name = types.Dynamic
	} else if name == owner {
		r.record(UnrecognizedTypeShape, subject, "self reference")
		name = types.Dynamic
	}

	d := types.New(name)
	d.Array = array
	d.Nullable = nullable
	r.overrides.Apply(&d)
	if p.Optional {
		d.Optional = true
	}
	prop.Type = d
	return prop
}

// elementName names the element type of an array; the element node is never
// resolved beyond that.
func (r *Resolver) elementName(subject string, el *metamodel.TypeNode) string {
	if el == nil {
		r.record(UnrecognizedTypeShape, subject, "array without element")
		return ""
	}
	switch el.Kind {
	case metamodel.KindBase, metamodel.KindReference:
		return el.Name
	case metamodel.KindStringLiteral:
		return "string"
	case metamodel.KindOr:
		return r.unionName(subject, el)
	default:
		r.record(UnrecognizedTypeShape, subject, "array of "+el.Shape())
		return ""
	}
}

func (r *Resolver) unionName(subject string, n *metamodel.TypeNode) string {
	key := UnionKey(n.Items)
	if name, ok := r.cfg.Unions[key]; ok && name != "" {
		return name
	}
	r.record(UnmappedUnion, subject, key)
	return ""
}

// synthesize queues a structure for an inline literal and returns its name.
func (r *Resolver) synthesize(owner, prop string, node *metamodel.TypeNode) string {
	lit, err := node.LiteralStructure()
	if err != nil {
		r.record(UnrecognizedTypeShape, owner+"."+prop, "literal: "+err.Error())
		return ""
	}
	name := owner + "_" + prop
	r.pending = append(r.pending, pendingLiteral{name: name, node: lit})
	return name
}
