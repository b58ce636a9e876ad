// Package value implements the hybrid concrete/symbolic runtime value
// domain consumed and produced by every primop.
package value

import "fmt"

// Kind discriminates the variant carried by a Value.
type Kind uint8

const (
	KindSymbolic Kind = iota
	KindI64
	KindI128
	KindBits
	KindBool
	KindEnum
	KindString
	KindUnit
	KindPoison
	KindStruct
	KindVector
	KindList
	KindRef
	KindTypeValue
)

func (k Kind) String() string {
	switch k {
	case KindSymbolic:
		return "Symbolic"
	case KindI64:
		return "I64"
	case KindI128:
		return "I128"
	case KindBits:
		return "Bits"
	case KindBool:
		return "Bool"
	case KindEnum:
		return "Enum"
	case KindString:
		return "String"
	case KindUnit:
		return "Unit"
	case KindPoison:
		return "Poison"
	case KindStruct:
		return "Struct"
	case KindVector:
		return "Vector"
	case KindList:
		return "List"
	case KindRef:
		return "Ref"
	case KindTypeValue:
		return "TypeValue"
	default:
		return "Unknown"
	}
}

// Sym is an opaque handle naming a solver-owned SMT term. Its width/sort
// is tracked by the Solver facade, not here.
type Sym uint32

// EnumVal identifies an enum member: (enum type id, member id).
type EnumVal struct {
	EnumID   uint32
	MemberID uint32
}

// RefPath is a path to a location-settable item in the symbol table.
// Kept as a simple name-path; the executor (out of scope) resolves it.
type RefPath struct {
	Root  uint32
	Steps []RefStep
}

// RefStep is one hop of a Ref path: a struct field name or a deref marker.
type RefStep struct {
	Field  uint32
	Deref  bool
}

// Value is the universal runtime value: a tagged union over Kind.
// Only the fields relevant to Kind are meaningful; this mirrors the
// teacher's compact-struct discipline (cpu.State) rather than an
// interface-per-variant encoding, since Value is copied pervasively by
// every primop call.
type Value struct {
	kind Kind

	sym Sym

	i64  int64
	i128 I128

	bits BV

	b bool

	enum EnumVal

	str string

	strct   *Struct
	vec     []Value
	list    *ListNode
	refPath RefPath
	typeVal any
}

// Struct is an ordered mapping name -> Value with unique keys.
type Struct struct {
	Names  []uint32
	Fields map[uint32]Value
}

// ListNode is a cons cell. A nil *ListNode is the canonical empty list.
type ListNode struct {
	Head Value
	Tail *ListNode
}

func Symbolic(s Sym) Value { return Value{kind: KindSymbolic, sym: s} }
func I64(x int64) Value    { return Value{kind: KindI64, i64: x} }
func I128Val(x I128) Value { return Value{kind: KindI128, i128: x} }
func BoolVal(b bool) Value { return Value{kind: KindBool, b: b} }
func BitsVal(bv BV) Value  { return Value{kind: KindBits, bits: bv} }
func StringVal(s string) Value { return Value{kind: KindString, str: s} }
func Unit() Value           { return Value{kind: KindUnit} }
func Poison() Value         { return Value{kind: KindPoison} }
func EnumValue(e EnumVal) Value { return Value{kind: KindEnum, enum: e} }

// EmptyList returns the canonical empty list value.
func EmptyList() Value { return Value{kind: KindList, list: nil} }

// Cons prepends head to an existing list value.
func Cons(head Value, tail Value) Value {
	if tail.kind != KindList {
		panic("value: Cons tail must be a List")
	}
	return Value{kind: KindList, list: &ListNode{Head: head, Tail: tail.list}}
}

// VectorVal constructs a finite, random-access sequence value.
func VectorVal(elems []Value) Value { return Value{kind: KindVector, vec: elems} }

// StructVal constructs a struct value from ordered names and fields.
// Panics if names contains a duplicate, mirroring the "keys unique"
// invariant from spec.md.
func StructVal(names []uint32, fields map[uint32]Value) Value {
	seen := make(map[uint32]bool, len(names))
	for _, n := range names {
		if seen[n] {
			panic(fmt.Sprintf("value: duplicate struct field name %d", n))
		}
		seen[n] = true
	}
	return Value{kind: KindStruct, strct: &Struct{Names: names, Fields: fields}}
}

// RefVal constructs a reference to a symbol-table location.
func RefVal(p RefPath) Value { return Value{kind: KindRef, refPath: p} }

// TypeVal wraps an IR type descriptor as a runtime value. This exists
// only to preserve op_eq's legacy behavior on two non-empty lists, which
// returns a type rather than a boolean (spec.md §9's documented quirk);
// t is opaque here (typically an *ir.Ty) to avoid a value->ir import.
func TypeVal(t any) Value { return Value{kind: KindTypeValue, typeVal: t} }

func (v Value) AsTypeValue() (any, bool) {
	if v.kind != KindTypeValue {
		return nil, false
	}
	return v.typeVal, true
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsSymbolic() bool { return v.kind == KindSymbolic }

func (v Value) Sym() (Sym, bool) {
	if v.kind != KindSymbolic {
		return 0, false
	}
	return v.sym, true
}

func (v Value) AsI64() (int64, bool) {
	if v.kind != KindI64 {
		return 0, false
	}
	return v.i64, true
}

func (v Value) AsI128() (I128, bool) {
	if v.kind != KindI128 {
		return I128{}, false
	}
	return v.i128, true
}

func (v Value) AsBits() (BV, bool) {
	if v.kind != KindBits {
		return BV{}, false
	}
	return v.bits, true
}

func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) AsEnum() (EnumVal, bool) {
	if v.kind != KindEnum {
		return EnumVal{}, false
	}
	return v.enum, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsStruct() (*Struct, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	return v.strct, true
}

func (v Value) AsVector() ([]Value, bool) {
	if v.kind != KindVector {
		return nil, false
	}
	return v.vec, true
}

func (v Value) AsList() (*ListNode, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

func (v Value) AsRef() (RefPath, bool) {
	if v.kind != KindRef {
		return RefPath{}, false
	}
	return v.refPath, true
}

// ListLen returns the number of elements in a List value.
func ListLen(l *ListNode) int {
	n := 0
	for l != nil {
		n++
		l = l.Tail
	}
	return n
}

func (v Value) String() string {
	switch v.kind {
	case KindSymbolic:
		return fmt.Sprintf("sym#%d", v.sym)
	case KindI64:
		return fmt.Sprintf("%d", v.i64)
	case KindI128:
		return v.i128.String()
	case KindBits:
		return v.bits.String()
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindEnum:
		return fmt.Sprintf("enum(%d,%d)", v.enum.EnumID, v.enum.MemberID)
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindUnit:
		return "()"
	case KindPoison:
		return "poison"
	case KindStruct:
		return "struct{...}"
	case KindVector:
		return fmt.Sprintf("vector[%d]", len(v.vec))
	case KindList:
		return fmt.Sprintf("list[%d]", ListLen(v.list))
	case KindRef:
		return "ref"
	case KindTypeValue:
		return "type"
	default:
		return "<?>"
	}
}
