// Package smt defines the narrow facade through which the primop layer
// talks to an (out-of-scope) incremental SMT solver supporting QF_BV and
// arrays/enums. Nothing in this package performs actual solving; it is
// the contract the executor's real backend implements.
package smt

import "github.com/oisee/isla-go/pkg/value"

// Sort names the SMT term sort a symbol was allocated with.
type Sort uint8

const (
	SortBV Sort = iota
	SortBool
	SortInt
)

// EventKind tags the events published by Solver.AddEvent, per spec.md
// §4.1 "Events published to the solver".
type EventKind uint8

const (
	EventInstr EventKind = iota
	EventBranch
	EventBarrier
	EventCacheOp
	EventMarkReg
	EventWakeupRequest
)

// Event is a single entry in a per-path event log. Fields beyond Kind are
// interpreted per-kind; unused fields are zero.
type Event struct {
	Kind    EventKind
	Opcode  string   // EventInstr
	Address uint64   // EventBranch, EventCacheOp
	Barrier string   // EventBarrier
	CacheOp string   // EventCacheOp
	Regs    []string // EventMarkReg
	Mark    string   // EventMarkReg
}

// Solver is the facade contract: allocate fresh symbols, add
// declarations/definitions/assertions, track per-symbol bit-widths, and
// emit a linear event trace. A real backend wraps an incremental QF_BV+
// arrays+enums solver; this package never implements one itself (spec.md
// §1 "deliberately out of scope").
type Solver interface {
	// FreshSym allocates a new symbol of the given sort/width and
	// returns its handle. For SortBool/SortInt, width is ignored.
	FreshSym(sort Sort, width uint32) value.Sym

	// DefineConst emits `define-const sym = term` where term is a
	// caller-built SMT expression reference (opaque to this facade; the
	// concrete AST representation lives in the real backend). Used by
	// every binary/ternary primop that lifts to SMT: the builder closure
	// constructs the term and this call publishes it under a fresh name.
	DefineConst(sort Sort, width uint32, termDesc string) value.Sym

	// AssertFact adds a boolean assertion.
	AssertFact(termDesc string)

	// CheckSat checks satisfiability of the current assertion stack.
	CheckSat() (Satisfiable bool, err error)

	// Length returns the bit-width of a previously allocated BV symbol.
	// Must be O(1); see spec.md §9 "Solver-owned symbol widths".
	Length(s value.Sym) (uint32, bool)

	// AddEvent appends an event to this path's linear event log.
	AddEvent(e Event)

	// Events returns the event log accumulated so far (in source order).
	Events() []Event

	// BumpCycle forwards a cycle-count increment request from a
	// cycle-counting primop (spec.md §4.1).
	BumpCycle(n uint64)
}
