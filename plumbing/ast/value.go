package ast

// Kind discriminates a Value's payload. The zero Kind is ValueNone, so a
// zero-valued Value is a well-formed "no value" without further setup.
type Kind uint8

const (
	ValueNone Kind = iota
	ValueInt
	ValueFloat
	ValueText
	ValueIdent
	ValueBytes
)

// Value is the tagged payload attached to an AST node. Text and Ident share
// the Str field: they have the same wire form but different semantic
// intent (Ident names a symbol, Text is free-form).
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Bytes []byte
}

func NoneValue() Value           { return Value{Kind: ValueNone} }
func IntValue(v int64) Value     { return Value{Kind: ValueInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }
func TextValue(s string) Value   { return Value{Kind: ValueText, Str: s} }
func IdentValue(s string) Value  { return Value{Kind: ValueIdent, Str: s} }
func BytesValue(b []byte) Value  { return Value{Kind: ValueBytes, Bytes: b} }

// Equal compares two values structurally. Float comparison is plain Go ==,
// which is IEEE-754 equality: NaN is never equal to NaN, even to itself.
// That is intentional — see the diff engine's Update-on-NaN behavior.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueNone:
		return true
	case ValueInt:
		return v.Int == o.Int
	case ValueFloat:
		return v.Float == o.Float
	case ValueText, ValueIdent:
		return v.Str == o.Str
	case ValueBytes:
		return bytesEqual(v.Bytes, o.Bytes)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EncodedSize estimates the wire size of the value in bytes. It is an
// estimate (the varint length prefix on Text/Ident/Bytes is charged a
// constant 2 bytes regardless of actual length), not byte-exact — good
// enough for the patch-size budgeting the diff engine exposes.
func (v Value) EncodedSize() int {
	switch v.Kind {
	case ValueNone:
		return 1
	case ValueInt, ValueFloat:
		return 9
	case ValueText, ValueIdent:
		return 3 + len(v.Str)
	case ValueBytes:
		return 3 + len(v.Bytes)
	default:
		return 1
	}
}
