package primop

import (
	"testing"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

func TestAddIntConcrete(t *testing.T) {
	s := smt.NewMockSolver()
	got, err := addInt(value.I64(2), value.I64(3), s)
	if err != nil {
		t.Fatalf("addInt: %v", err)
	}
	i, ok := got.AsI128()
	if !ok || i.Int64() != 5 {
		t.Errorf("addInt(2,3) = %v, want 5", got)
	}
}

func TestTdivIntByZero(t *testing.T) {
	s := smt.NewMockSolver()
	_, err := tdivInt(value.I64(10), value.I64(0), s)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrOverflow {
		t.Errorf("tdivInt by zero: err = %v, want ExecError{Kind: ErrOverflow}", err)
	}
}

func TestAddIntSymbolicLiftsToSymbol(t *testing.T) {
	s := smt.NewMockSolver()
	sym := s.FreshSym(smt.SortInt, 128)
	got, err := addInt(value.Symbolic(sym), value.I64(1), s)
	if err != nil {
		t.Fatalf("addInt: %v", err)
	}
	if !got.IsSymbolic() {
		t.Errorf("addInt(symbolic, concrete) = %v, want Symbolic result", got)
	}
}

func TestPow2Concrete(t *testing.T) {
	s := smt.NewMockSolver()
	got, err := pow2(value.I64(4), s)
	if err != nil {
		t.Fatalf("pow2: %v", err)
	}
	i, _ := got.AsI128()
	if i.Int64() != 16 {
		t.Errorf("pow2(4) = %v, want 16", got)
	}
}

func TestSubNatSaturatesAtZero(t *testing.T) {
	s := smt.NewMockSolver()
	got, err := subNat(value.I64(2), value.I64(5), s)
	if err != nil {
		t.Fatalf("subNat: %v", err)
	}
	i, _ := got.AsI128()
	if i.Int64() != 0 {
		t.Errorf("subNat(2,5) = %v, want 0", got)
	}
}

func TestIntComparisons(t *testing.T) {
	s := smt.NewMockSolver()
	cases := []struct {
		name string
		fn   func(a, b value.Value, s smt.Solver) (value.Value, error)
		a, b int64
		want bool
	}{
		{"lt_int true", ltInt, 1, 2, true},
		{"lt_int false", ltInt, 2, 1, false},
		{"gteq_int equal", gteqInt, 2, 2, true},
		{"neq_int", neqInt, 2, 3, true},
		{"eq_int", eqInt, 3, 3, true},
	}
	for _, c := range cases {
		got, err := c.fn(value.I64(c.a), value.I64(c.b), s)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		b, ok := got.AsBool()
		if !ok || b != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
}
