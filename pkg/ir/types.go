// Package ir implements the typed, clone-cheap intermediate
// representation over symtab.Name identifiers: types, expressions,
// operators, locations, instructions, and definitions (spec.md §3 "IR").
//
// Grounded on the teacher's pkg/cpu/exec.go giant-switch-over-a-dense-tag
// style for how every IR node carries a Kind discriminant and is walked
// by a switch, and on pkg/inst/instruction.go's "one compact struct, not
// one type per variant" discipline.
package ir

import "github.com/oisee/isla-go/pkg/symtab"

// TyKind discriminates a Ty node.
type TyKind uint8

const (
	TyUnit TyKind = iota
	TyBool
	TyBit
	TyString
	TyReal
	TyLooseInt
	TySizedInt
	TyIntConstant // refinement type: a single known integer value
	TyLooseBits
	TySizedBits
	TyFixedBits
	TyEnum
	TyStruct
	TyUnion
	TyVector
	TyList
	TyRef
)

// Ty is a node in the type tree.
type Ty struct {
	Kind TyKind

	Width int64 // TySizedInt/TySizedBits/TyFixedBits

	IntConstVal int64 // TyIntConstant

	Name symtab.Name // TyEnum/TyStruct/TyUnion

	Elem *Ty // TyVector/TyList/TyRef element/referent type
}

func Unit() *Ty   { return &Ty{Kind: TyUnit} }
func Bool() *Ty   { return &Ty{Kind: TyBool} }
func Bit() *Ty    { return &Ty{Kind: TyBit} }
func StringTy() *Ty { return &Ty{Kind: TyString} }
func Real() *Ty   { return &Ty{Kind: TyReal} }
func LooseInt() *Ty { return &Ty{Kind: TyLooseInt} }
func SizedInt(w int64) *Ty { return &Ty{Kind: TySizedInt, Width: w} }
func IntConstant(v int64) *Ty { return &Ty{Kind: TyIntConstant, IntConstVal: v} }
func LooseBits() *Ty { return &Ty{Kind: TyLooseBits} }
func SizedBits(w int64) *Ty { return &Ty{Kind: TySizedBits, Width: w} }
func FixedBits(w int64) *Ty { return &Ty{Kind: TyFixedBits, Width: w} }
func NamedEnum(n symtab.Name) *Ty   { return &Ty{Kind: TyEnum, Name: n} }
func NamedStruct(n symtab.Name) *Ty { return &Ty{Kind: TyStruct, Name: n} }
func NamedUnion(n symtab.Name) *Ty  { return &Ty{Kind: TyUnion, Name: n} }
func VectorOf(elem *Ty) *Ty { return &Ty{Kind: TyVector, Elem: elem} }
func ListOf(elem *Ty) *Ty   { return &Ty{Kind: TyList, Elem: elem} }
func RefOf(elem *Ty) *Ty    { return &Ty{Kind: TyRef, Elem: elem} }

// Equal performs a structural (not nominal-only) comparison.
func (t *Ty) Equal(o *Ty) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TySizedInt, TySizedBits, TyFixedBits:
		return t.Width == o.Width
	case TyIntConstant:
		return t.IntConstVal == o.IntConstVal
	case TyEnum, TyStruct, TyUnion:
		return t.Name == o.Name
	case TyVector, TyList, TyRef:
		return t.Elem.Equal(o.Elem)
	default:
		return true
	}
}
