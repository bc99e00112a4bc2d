// Package value implements the VM's tagged Value type: nil, bool, number or
// a heap object reference, plus the equality and truthiness rules the
// compiler and VM share.
package value

import (
	"strconv"

	"github.com/JBank25/golox/pkg/object"
)

// Kind tags which field of a Value is live.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

// Value is a small tagged union. Go has no native union, so every variant
// gets its own field; the zero Value is KindNil, which matters for
// pkg/table's tombstone bookkeeping.
type Value struct {
	Kind Kind

	number float64
	bool_  bool
	str    *object.String
}

// Nil is the value of the language's nil literal.
var Nil = Value{Kind: KindNil}

func Bool(b bool) Value { return Value{Kind: KindBool, bool_: b} }

func Number(n float64) Value { return Value{Kind: KindNumber, number: n} }

func String(s *object.String) Value { return Value{Kind: KindString, str: s} }

func (v Value) IsNil() bool    { return v.Kind == KindNil }
func (v Value) IsBool() bool   { return v.Kind == KindBool }
func (v Value) IsNumber() bool { return v.Kind == KindNumber }
func (v Value) IsString() bool { return v.Kind == KindString }

func (v Value) AsBool() bool               { return v.bool_ }
func (v Value) AsNumber() float64          { return v.number }
func (v Value) AsString() *object.String   { return v.str }

// IsFalsey implements the language's truthiness rule: nil and false are
// falsey, everything else (including 0 and the empty string) is truthy.
func (v Value) IsFalsey() bool {
	return v.Kind == KindNil || (v.Kind == KindBool && !v.bool_)
}

// Equal is strict equality: values of different kinds are never equal, and
// strings compare by identity (safe because every string is interned).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.bool_ == b.bool_
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.str == b.str
	default:
		return false
	}
}

// String renders a value the way the runtime's print statement and REPL do.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.bool_ {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindString:
		return v.str.String()
	default:
		return ""
	}
}
