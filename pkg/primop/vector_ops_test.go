package primop

import (
	"testing"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

func TestVectorAccessConcreteIndex(t *testing.T) {
	s := smt.NewMockSolver()
	vec := value.VectorVal([]value.Value{value.I64(10), value.I64(20), value.I64(30)})
	got, err := vectorAccess(vec, value.I64(1), s)
	if err != nil {
		t.Fatalf("vector_access: %v", err)
	}
	i, _ := got.AsI64()
	if i != 20 {
		t.Errorf("vector_access(vec,1) = %v, want 20", got)
	}
}

func TestVectorAccessOutOfBounds(t *testing.T) {
	s := smt.NewMockSolver()
	vec := value.VectorVal([]value.Value{value.I64(10)})
	_, err := vectorAccess(vec, value.I64(5), s)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrOutOfBounds {
		t.Errorf("vector_access(out of bounds) err = %v, want ExecError{Kind: ErrOutOfBounds}", err)
	}
}

func TestVectorUpdateConcreteIndex(t *testing.T) {
	s := smt.NewMockSolver()
	vec := value.VectorVal([]value.Value{value.I64(1), value.I64(2), value.I64(3)})
	got, err := vectorUpdate(vec, value.I64(1), value.I64(99), s)
	if err != nil {
		t.Fatalf("vector_update: %v", err)
	}
	out, _ := got.AsVector()
	want := []int64{1, 99, 3}
	for i, w := range want {
		v, _ := out[i].AsI64()
		if v != w {
			t.Errorf("out[%d] = %d, want %d", i, v, w)
		}
	}
	// original vector must be untouched (value semantics).
	orig, _ := vec.AsVector()
	v1, _ := orig[1].AsI64()
	if v1 != 2 {
		t.Errorf("original vector mutated: out[1] = %d, want 2", v1)
	}
}

func TestVectorUpdateSymbolicIndexBuildsIteChain(t *testing.T) {
	s := smt.NewMockSolver()
	sym := s.FreshSym(smt.SortInt, 128)
	vec := value.VectorVal([]value.Value{value.I64(1), value.I64(2)})
	got, err := vectorUpdate(vec, value.Symbolic(sym), value.I64(9), s)
	if err != nil {
		t.Fatalf("vector_update: %v", err)
	}
	out, _ := got.AsVector()
	for i, v := range out {
		if !v.IsSymbolic() {
			t.Errorf("out[%d] = %v, want Symbolic (index was symbolic)", i, v)
		}
	}
}
