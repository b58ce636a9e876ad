package ir

import "github.com/oisee/isla-go/pkg/symtab"

// LocKind discriminates a Loc node.
type LocKind uint8

const (
	LocId LocKind = iota
	LocField
	LocDeref
)

// Loc is a location expression (spec.md §3 "Location Loc").
type Loc struct {
	Kind  LocKind
	Name  symtab.Name // LocId, LocField field name
	Base  *Loc        // LocField, LocDeref
}

func LocIdent(n symtab.Name) *Loc { return &Loc{Kind: LocId, Name: n} }

func LocFieldOf(base *Loc, field symtab.Name) *Loc {
	return &Loc{Kind: LocField, Base: base, Name: field}
}

func LocDerefOf(base *Loc) *Loc { return &Loc{Kind: LocDeref, Base: base} }
