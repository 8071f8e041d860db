package model

import "github.com/Alia5/lspgen/internal/codegen/types"

// InvalidSuffix names the sentinel value injected into enumerations that
// cannot serialize their raw values directly.
const InvalidSuffix = "_Invalid"

// SentinelValue is the storage value consumed by the injected sentinel.
const SentinelValue = "-1"

// autoTypes serialize their raw values directly, both as schema names and as
// their usual target mappings.
var autoTypes = map[string]bool{
	"int":          true,
	"unsigned int": true,
	"double":       true,
	"integer":      true,
	"uinteger":     true,
	"decimal":      true,
}

var integerTypes = map[string]bool{
	"int":          true,
	"unsigned int": true,
	"integer":      true,
	"uinteger":     true,
}

// EnumValue is one member of an enumeration.
type EnumValue struct {
	Name          string
	Value         *string
	WireValue     *string // nil serializes as null
	Documentation string
	sentinel      bool
}

func NewEnumValue(name string, value *string) *EnumValue {
	return &EnumValue{Name: name, Value: value, WireValue: value}
}

// IsSentinel reports whether the value was injected by Finalize.
func (v *EnumValue) IsSentinel() bool {
	return v.sentinel
}

// Enumeration is a named scalar enumeration.
type Enumeration struct {
	Name          string
	Documentation string
	ValueType     types.Descriptor
	Values        []*EnumValue
	finalized     bool
}

func NewEnumeration(name string, valueType types.Descriptor) *Enumeration {
	return &Enumeration{Name: name, ValueType: valueType}
}

func (e *Enumeration) AddValue(v *EnumValue) {
	e.Values = append(e.Values, v)
}

// RequiresBindings reports whether the raw values need a wire table.
func (e *Enumeration) RequiresBindings() bool {
	return !autoTypes[e.ValueType.Name]
}

// IntegerValued reports whether declared values may be emitted inline.
func (e *Enumeration) IntegerValued() bool {
	return integerTypes[e.ValueType.Name]
}

// SentinelName is the name of the injected invalid value.
func (e *Enumeration) SentinelName() string {
	return e.Name + InvalidSuffix
}

// Finalize injects the invalid sentinel as first value when the value type is
// not auto-representable. It is safe to call more than once.
func (e *Enumeration) Finalize() {
	if e.finalized {
		return
	}
	e.finalized = true
	if !e.RequiresBindings() {
		return
	}
	value := SentinelValue
	sentinel := &EnumValue{
		Name:          e.SentinelName(),
		Value:         &value,
		Documentation: "Automatically added by generator as invalid handler",
		sentinel:      true,
	}
	e.Values = append([]*EnumValue{sentinel}, e.Values...)
}
