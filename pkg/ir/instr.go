package ir

import "github.com/oisee/isla-go/pkg/symtab"

// InstrKind discriminates an Instruction node (spec.md §3 "Instruction").
type InstrKind uint8

const (
	InstrDeclare InstrKind = iota
	InstrInitialize
	InstrJump // conditional jump to a label
	InstrGoto // unconditional
	InstrCopy
	InstrCall
	InstrPrimop // resolved call — inserted by InsertPrimops, never present before it
	InstrFailure
	InstrArbitrary // havoc
	InstrEnd
)

// Instr is one instruction in a function body.
type Instr struct {
	Kind InstrKind

	Loc *Loc // InstrDeclare/Initialize/Copy/Call/Primop destination

	Ty *Ty // InstrDeclare declared type

	Exp *Exp // InstrInitialize/Copy value, InstrJump condition

	Label string // InstrJump target, InstrGoto target (Instr index marker)

	FuncName symtab.Name // InstrCall/InstrPrimop callee name
	Extern   bool        // InstrCall: true if the callee is an extern primitive
	Args     []*Exp      // InstrCall/InstrPrimop arguments

	Msg string // InstrFailure message
}

func Declare(loc *Loc, ty *Ty) Instr { return Instr{Kind: InstrDeclare, Loc: loc, Ty: ty} }
func Initialize(loc *Loc, e *Exp) Instr {
	return Instr{Kind: InstrInitialize, Loc: loc, Exp: e}
}
func Jump(cond *Exp, label string) Instr { return Instr{Kind: InstrJump, Exp: cond, Label: label} }
func Goto(label string) Instr            { return Instr{Kind: InstrGoto, Label: label} }
func Copy(loc *Loc, e *Exp) Instr        { return Instr{Kind: InstrCopy, Loc: loc, Exp: e} }
func Call(loc *Loc, extern bool, f symtab.Name, args []*Exp) Instr {
	return Instr{Kind: InstrCall, Loc: loc, Extern: extern, FuncName: f, Args: args}
}
func Primop(loc *Loc, f symtab.Name, args []*Exp) Instr {
	return Instr{Kind: InstrPrimop, Loc: loc, FuncName: f, Args: args}
}
func Failure(msg string) Instr { return Instr{Kind: InstrFailure, Msg: msg} }
func Arbitrary(loc *Loc, ty *Ty) Instr {
	return Instr{Kind: InstrArbitrary, Loc: loc, Ty: ty}
}
func End() Instr { return Instr{Kind: InstrEnd} }
