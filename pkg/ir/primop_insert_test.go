package ir

import (
	"reflect"
	"testing"

	"github.com/oisee/isla-go/pkg/symtab"
)

// TestInsertPrimopsRewritesCalls verifies the invariant from spec.md §3:
// after the pass, every Call whose target is a primop name becomes a
// Primop node, and no Primop existed before the pass.
func TestInsertPrimopsRewritesCalls(t *testing.T) {
	tbl := symtab.New()
	addInt := tbl.Intern("add_int")
	userFn := tbl.Intern("user_fn")
	loc := LocIdent(tbl.Intern("result"))

	defs := []Def{
		Val(addInt, nil, LooseInt()),
		Fn(userFn, nil, Unit(), []Instr{
			Call(loc, false, addInt, []*Exp{LitInt(1), LitInt(2)}),
		}),
	}

	ss := BuildSharedState(defs)
	if !ss.Primops[addInt] {
		t.Fatalf("expected add_int to be classified as a primop")
	}

	InsertPrimops(defs, ss)

	body := defs[1].Body
	if len(body) != 1 || body[0].Kind != InstrPrimop {
		t.Fatalf("expected rewritten Primop instruction, got %+v", body)
	}
	if body[0].FuncName != addInt {
		t.Errorf("FuncName = %v, want %v", body[0].FuncName, addInt)
	}
}

// TestInsertPrimopsIdempotent verifies running the pass twice is a no-op,
// per spec.md §8's idempotence property.
func TestInsertPrimopsIdempotent(t *testing.T) {
	tbl := symtab.New()
	addInt := tbl.Intern("add_int")
	userFn := tbl.Intern("user_fn")
	loc := LocIdent(tbl.Intern("result"))

	defs := []Def{
		Val(addInt, nil, LooseInt()),
		Fn(userFn, nil, Unit(), []Instr{
			Call(loc, false, addInt, []*Exp{LitInt(1), LitInt(2)}),
		}),
	}
	ss := BuildSharedState(defs)
	InsertPrimops(defs, ss)
	first := defs[1].Body[0]
	InsertPrimops(defs, ss)
	second := defs[1].Body[0]
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed instruction: %+v != %+v", first, second)
	}
}

// TestValidateNoUnresolvedCalls verifies that a Call to a name with
// neither a body nor a primop registration is flagged.
func TestValidateNoUnresolvedCalls(t *testing.T) {
	tbl := symtab.New()
	ghost := tbl.Intern("ghost_fn")
	userFn := tbl.Intern("user_fn")
	loc := LocIdent(tbl.Intern("result"))

	defs := []Def{
		Fn(userFn, nil, Unit(), []Instr{
			Call(loc, false, ghost, nil),
		}),
	}
	ss := BuildSharedState(defs)
	InsertPrimops(defs, ss)

	name, bad := ValidateNoUnresolvedCalls(defs, ss)
	if !bad || name != ghost {
		t.Errorf("expected unresolved call to %v, got (%v,%v)", ghost, name, bad)
	}
}

func TestValidateNoUnresolvedCallsClean(t *testing.T) {
	tbl := symtab.New()
	addInt := tbl.Intern("add_int")
	userFn := tbl.Intern("user_fn")
	loc := LocIdent(tbl.Intern("result"))

	defs := []Def{
		Val(addInt, nil, LooseInt()),
		Fn(userFn, nil, Unit(), []Instr{
			Call(loc, false, addInt, []*Exp{LitInt(1), LitInt(2)}),
		}),
	}
	ss := BuildSharedState(defs)
	InsertPrimops(defs, ss)

	if _, bad := ValidateNoUnresolvedCalls(defs, ss); bad {
		t.Errorf("expected no unresolved calls after primop rewrite")
	}
}
