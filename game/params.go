package game

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	StringValue ValueKind = iota
	NumberValue
	BoolValue
)

var (
	errUnsupportedValue = errors.New("parameter values must be strings, numbers or booleans")
	errNonFiniteNumber  = errors.New("parameter numbers must be finite")
)

// Value is a parameter value: a string, a number or a boolean.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

func StringVal(s string) Value  { return Value{kind: StringValue, str: s} }
func NumberVal(n float64) Value { return Value{kind: NumberValue, num: n} }
func BoolVal(b bool) Value      { return Value{kind: BoolValue, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

// Num returns the numeric value; ok is false for non-numbers.
func (v Value) Num() (n float64, ok bool) {
	return v.num, v.kind == NumberValue
}

func (v Value) Str() (s string, ok bool) {
	return v.str, v.kind == StringValue
}

func (v Value) Bool() (b bool, ok bool) {
	return v.b, v.kind == BoolValue
}

// String formats the value for display. Numbers use the shortest exact
// decimal form without exponent, so 30 prints as "30" and 0.5 as "0.5".
func (v Value) String() string {
	switch v.kind {
	case NumberValue:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case BoolValue:
		return strconv.FormatBool(v.b)
	}
	return v.str
}

func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case NumberValue:
		return v.num, nil
	case BoolValue:
		return v.b, nil
	}
	return v.str, nil
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", node.Line, errUnsupportedValue)
	}
	switch node.Tag {
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return fmt.Errorf("line %d: %w", node.Line, errNonFiniteNumber)
		}
		*v = NumberVal(n)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolVal(b)
	default:
		*v = StringVal(node.Value)
	}
	return nil
}

// Parameter is one name = value entry of a parameter section.
type Parameter struct {
	Span  `yaml:"-"`
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
}

// ParameterSet keeps parameters in declaration order, which is also their
// display order.
type ParameterSet struct {
	Span       `yaml:"-"`
	Parameters []Parameter `yaml:"parameters"`
}

// Lookup returns the first parameter with the given name. It is safe to
// call on a nil set.
func (ps *ParameterSet) Lookup(name string) (*Parameter, bool) {
	if ps == nil {
		return nil, false
	}
	for i := range ps.Parameters {
		if ps.Parameters[i].Name == name {
			return &ps.Parameters[i], true
		}
	}
	return nil, false
}
