package ir

import "github.com/oisee/isla-go/pkg/symtab"

// InsertPrimops runs the IR pre-pass of spec.md §4.2: it learns, from
// ss.Primops, which Call targets have no body, and rewrites every such
// Call into a Primop node in place. After one run:
//
//   - no Primop node existed before the pass (precondition, not checked)
//   - no Call targeting a primop name remains (postcondition, enforced)
//   - every remaining Call must have a body in ss.Functions (checked by
//     the caller via ss.Functions, not here — this pass only rewrites)
//
// The rewrite is idempotent: running it twice is a no-op the second time,
// since after the first pass no Call node names a primop (spec.md §8).
func InsertPrimops(defs []Def, ss *SharedState) {
	for i := range defs {
		if defs[i].Kind != DefFn {
			continue
		}
		rewriteBody(defs[i].Body, ss.Primops)
	}
}

func rewriteBody(body []Instr, primops map[symtab.Name]bool) {
	for i := range body {
		if body[i].Kind == InstrCall && primops[body[i].FuncName] {
			body[i] = Instr{
				Kind:     InstrPrimop,
				Loc:      body[i].Loc,
				FuncName: body[i].FuncName,
				Args:     body[i].Args,
			}
		}
	}
}

// ValidateNoUnresolvedCalls checks the postcondition: every remaining
// InstrCall instruction must name a function with a body. Returns the
// first offending name, or (0,false) if none. This is the "type-level
// failure during setup, not at execution time" contract of spec.md §4.2.
func ValidateNoUnresolvedCalls(defs []Def, ss *SharedState) (symtab.Name, bool) {
	for _, d := range defs {
		if d.Kind != DefFn {
			continue
		}
		for _, instr := range d.Body {
			if instr.Kind != InstrCall {
				continue
			}
			if _, ok := ss.Functions[instr.FuncName]; !ok {
				return instr.FuncName, true
			}
		}
	}
	return 0, false
}

// ValidatePrimopNamesKnown checks that every Primop node's name is
// registered in one of the primop registry's three tables. The registry
// itself lives in pkg/primop to avoid an import cycle; callers pass in a
// lookup function. Returns the first offending name, or (0,false).
func ValidatePrimopNamesKnown(defs []Def, known func(symtab.Name) bool) (symtab.Name, bool) {
	for _, d := range defs {
		if d.Kind != DefFn {
			continue
		}
		for _, instr := range d.Body {
			if instr.Kind != InstrPrimop {
				continue
			}
			if !known(instr.FuncName) {
				return instr.FuncName, true
			}
		}
	}
	return 0, false
}
