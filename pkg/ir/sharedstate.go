package ir

import "github.com/oisee/isla-go/pkg/symtab"

// FuncEntry is the post-intern record for every name that has a
// definition (DefFn): spec.md §3 "SharedState". Params and RetTy come
// from the matching signature (DefVal) when there is one, and from the
// DefFn itself otherwise.
type FuncEntry struct {
	Params []Param
	RetTy  *Ty
	Body   []Instr
}

// SharedState is the immutable, concurrently-readable mapping produced
// after interning + the primop pre-pass: every callable function plus the
// set of primop names (signatures without bodies). Grounded on the
// teacher's read-only Catalog [OpCodeCount]Info table — a dense,
// build-once, read-many side table (spec.md §5 "SharedState... immutable
// after initialization... read concurrently by all paths").
type SharedState struct {
	Functions map[symtab.Name]FuncEntry
	Primops   map[symtab.Name]bool
}

// BuildSharedState partitions top-level definitions into callable
// functions and primop names, per spec.md §3's "Primop-insertion
// invariant": a DefVal with no matching DefFn body is a primop name; a
// DefFn always has a body and is callable.
func BuildSharedState(defs []Def) *SharedState {
	ss := &SharedState{
		Functions: make(map[symtab.Name]FuncEntry),
		Primops:   make(map[symtab.Name]bool),
	}

	sigs := make(map[symtab.Name]Def)
	bodies := make(map[symtab.Name]Def)
	for _, d := range defs {
		switch d.Kind {
		case DefVal:
			sigs[d.Name] = d
		case DefFn:
			bodies[d.Name] = d
		}
	}

	for name, fn := range bodies {
		sig, hasSig := sigs[name]
		params := fn.Params
		ret := fn.RetTy
		if hasSig {
			params = sig.Params
			ret = sig.RetTy
		}
		ss.Functions[name] = FuncEntry{Params: params, RetTy: ret, Body: fn.Body}
	}

	for name := range sigs {
		if _, hasBody := bodies[name]; !hasBody {
			ss.Primops[name] = true
		}
	}

	return ss
}
