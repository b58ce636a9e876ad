package ir

import "github.com/oisee/isla-go/pkg/symtab"

// DefKind discriminates a Definition node (spec.md §3 "Definition").
type DefKind uint8

const (
	DefRegister DefKind = iota
	DefLet
	DefEnum
	DefStruct
	DefUnion
	DefVal // signature only — no body; candidate primop
	DefFn  // signature + body
)

// Param is a named, typed function/struct/union field.
type Param struct {
	Name symtab.Name
	Ty   *Ty
}

// Def is one top-level definition.
type Def struct {
	Kind DefKind

	Name symtab.Name

	Ty *Ty // DefRegister declared type

	EnumMembers []symtab.Name // DefEnum

	Fields []Param // DefStruct/DefUnion fields

	Params []Param // DefVal/DefFn parameters
	RetTy  *Ty     // DefVal/DefFn return type
	Body   []Instr // DefFn body; nil for DefVal

	SetupBody []Instr // DefLet setup block
}

func Register(name symtab.Name, ty *Ty) Def {
	return Def{Kind: DefRegister, Name: name, Ty: ty}
}

func Let(name symtab.Name, setup []Instr) Def {
	return Def{Kind: DefLet, Name: name, SetupBody: setup}
}

func Enum(name symtab.Name, members []symtab.Name) Def {
	return Def{Kind: DefEnum, Name: name, EnumMembers: members}
}

func StructDef(name symtab.Name, fields []Param) Def {
	return Def{Kind: DefStruct, Name: name, Fields: fields}
}

// UnionDef emits the correct Union variant — the clean-room decision
// documented in DESIGN.md not to replicate original_source's "Union
// interning miscoded as Struct" bug (spec.md §9 open question).
func UnionDef(name symtab.Name, fields []Param) Def {
	return Def{Kind: DefUnion, Name: name, Fields: fields}
}

func Val(name symtab.Name, params []Param, ret *Ty) Def {
	return Def{Kind: DefVal, Name: name, Params: params, RetTy: ret}
}

func Fn(name symtab.Name, params []Param, ret *Ty, body []Instr) Def {
	return Def{Kind: DefFn, Name: name, Params: params, RetTy: ret, Body: body}
}
