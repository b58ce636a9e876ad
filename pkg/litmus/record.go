// Package litmus implements the litmus-test front end: parsing a TOML
// litmus description, assembling and linking each thread's assembly
// fragment through the configured ISA toolchain, extracting the linked
// sections, and parsing the final assertion into a Prop tree the
// evaluator core can check against an execution's observed state.
package litmus

import (
	"fmt"

	"github.com/oisee/isla-go/pkg/isa"
)

// ParseValueLiteral parses a final-assertion or thread-init literal in
// either decimal or 0x-hex form, the same dual form the ISA config
// accepts for its base/stride fields (isa.HexOrDecimal). A Prop's Value
// field is kept as a string so non-numeric literals (symbolic address
// names, enum member names) pass through unparsed; callers that expect
// a concrete integer call this to resolve it.
func ParseValueLiteral(s string) (uint64, error) {
	var h isa.HexOrDecimal
	if err := h.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("litmus: value %q is not a decimal or 0x-hex integer: %w", s, err)
	}
	return uint64(h), nil
}

// LocKind discriminates the two shapes a final-assertion location can
// name: a thread's register, or the last value written to an address.
type LocKind uint8

const (
	LocRegister LocKind = iota
	LocLastWriteTo
)

// Loc names one observable location in a final assertion.
type Loc struct {
	Kind     LocKind
	Thread   int    // LocRegister, LocLastWriteTo
	Register string // LocRegister
	Address  string // LocLastWriteTo: a symbolic address name from [symbolic_addrs]
}

func (l Loc) String() string {
	switch l.Kind {
	case LocRegister:
		return fmt.Sprintf("%d:%s", l.Thread, l.Register)
	case LocLastWriteTo:
		return fmt.Sprintf("*%s", l.Address)
	default:
		return "<?loc>"
	}
}

// PropKind discriminates the final-assertion proposition shapes: atomic
// equality, and the four boolean connectives used to combine them
// (spec.md §4.4 step 7: `EqLoc | And | Or | Not | Implies`).
type PropKind uint8

const (
	PropEqual PropKind = iota
	PropAnd
	PropOr
	PropNot
	PropImplies
)

// Prop is a node in the final-assertion tree parsed from the litmus
// file's `final` S-expression.
type Prop struct {
	Kind     PropKind
	Loc      Loc     // PropEqual
	Value    string  // PropEqual: the literal the location must equal
	Children []*Prop // PropAnd, PropOr
	Child    *Prop   // PropNot
	Left     *Prop   // PropImplies: antecedent
	Right    *Prop   // PropImplies: consequent
}

// EqualProp constructs an atomic `loc = value` proposition.
func EqualProp(loc Loc, value string) *Prop {
	return &Prop{Kind: PropEqual, Loc: loc, Value: value}
}

// AndProp, OrProp, NotProp, ImpliesProp construct the boolean
// connectives.
func AndProp(children ...*Prop) *Prop { return &Prop{Kind: PropAnd, Children: children} }
func OrProp(children ...*Prop) *Prop  { return &Prop{Kind: PropOr, Children: children} }
func NotProp(child *Prop) *Prop       { return &Prop{Kind: PropNot, Child: child} }

// ImpliesProp constructs `p => q`, grounded on the original's
// Prop::Implies (litmus.rs), which takes exactly two operands.
func ImpliesProp(p, q *Prop) *Prop { return &Prop{Kind: PropImplies, Left: p, Right: q} }

// RegisterInit is one `(register, address)` pair produced by resolving
// a thread's `init` table (spec.md §4.4 step 2): the register a thread
// starts with loaded, and the symbolic address it is initialized to.
type RegisterInit struct {
	Register string
	Address  uint64
}

// Thread is one litmus thread: its assembly source, optional
// register-rename table (e.g. renaming an abstract "p" to a concrete
// x0 for this thread only), and register initializations.
type Thread struct {
	Assembly string
	Renames  map[string]string

	// InitNames is the thread's `init` table exactly as parsed: register
	// name -> value name, neither register-renamed nor address-resolved
	// yet (spec.md §4.4 step 2). ResolveInit resolves it and returns the
	// resulting pairs.
	InitNames map[string]string

	// Init holds resolved register initializations: each register mapped
	// through ISAConfig.register_renames and its value name looked up in
	// the symbolic address assignment. Parse and ResolveInit do not set
	// it; ResolveInit returns the pairs to its caller instead.
	Init []RegisterInit
}

// Record is the fully parsed litmus test: its threads, the symbolic
// addresses it allocates, and the final assertion to check once the
// assembled/linked binary has been executed.
type Record struct {
	Name        string
	Description string // optional, supplemented per SPEC_FULL §11
	Arch        string
	Threads     []Thread
	Final       *Prop

	// SymbolicAddrs lists the abstract address names (matching the ISA
	// config's symbolic_addrs) this test references; assignment of
	// concrete addresses to these names happens in parse.go.
	SymbolicAddrs []string
}
