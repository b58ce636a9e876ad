package ir

import "github.com/oisee/isla-go/pkg/symtab"

// ExpKind discriminates an Exp node.
type ExpKind uint8

const (
	ExpId ExpKind = iota
	ExpRegisterRef
	ExpLitBool
	ExpLitBit
	ExpLitBits
	ExpLitInt
	ExpLitString
	ExpLitUnit
	ExpStructLit
	ExpUnionCtor
	ExpUnionDtor
	ExpUnwrap // kept distinct per spec.md §9 open question — never folded into ExpUnionDtor/Kind
	ExpFieldProj
	ExpOpCall
)

// StructField is one name/value pair of a struct literal.
type StructField struct {
	Name  symtab.Name
	Value *Exp
}

// Exp is a node in the expression tree (spec.md §3 "Expression Exp").
// Fields are meaningful per Kind; unused fields are zero/nil, matching
// the Value tagged-union discipline in pkg/value.
type Exp struct {
	Kind ExpKind

	Name symtab.Name // Id, RegisterRef, UnionCtor/UnionDtor variant, FieldProj field

	BoolVal   bool
	BitVal    uint8  // 0 or 1
	BitsBits  uint64 // literal bits, low Width bits significant
	BitsWidth int64
	IntVal    int64
	StrVal    string

	Fields []StructField // ExpStructLit

	Sub *Exp // ExpUnionCtor/ExpUnionDtor/ExpUnwrap/ExpFieldProj target/payload

	Op   Op
	Args []*Exp // ExpOpCall
}

func Id(n symtab.Name) *Exp         { return &Exp{Kind: ExpId, Name: n} }
func RegisterRef(n symtab.Name) *Exp { return &Exp{Kind: ExpRegisterRef, Name: n} }
func LitBool(b bool) *Exp           { return &Exp{Kind: ExpLitBool, BoolVal: b} }
func LitBit(b uint8) *Exp           { return &Exp{Kind: ExpLitBit, BitVal: b} }
func LitBits(bits uint64, width int64) *Exp {
	return &Exp{Kind: ExpLitBits, BitsBits: bits, BitsWidth: width}
}
func LitInt(i int64) *Exp     { return &Exp{Kind: ExpLitInt, IntVal: i} }
func LitString(s string) *Exp { return &Exp{Kind: ExpLitString, StrVal: s} }
func LitUnit() *Exp           { return &Exp{Kind: ExpLitUnit} }

func StructLit(fields []StructField) *Exp { return &Exp{Kind: ExpStructLit, Fields: fields} }

func UnionCtor(variant symtab.Name, payload *Exp) *Exp {
	return &Exp{Kind: ExpUnionCtor, Name: variant, Sub: payload}
}

func UnionDtor(variant symtab.Name, target *Exp) *Exp {
	return &Exp{Kind: ExpUnionDtor, Name: variant, Sub: target}
}

// UnwrapOf constructs an Unwrap expression, kept as its own variant (see
// spec.md §9 and DESIGN.md's decision not to collapse it into Kind).
func UnwrapOf(variant symtab.Name, target *Exp) *Exp {
	return &Exp{Kind: ExpUnwrap, Name: variant, Sub: target}
}

func FieldProj(field symtab.Name, target *Exp) *Exp {
	return &Exp{Kind: ExpFieldProj, Name: field, Sub: target}
}

func OpCall(op Op, args ...*Exp) *Exp {
	return &Exp{Kind: ExpOpCall, Op: op, Args: args}
}
