package primop

import "testing"

func TestRegistryKnownCoversAllTables(t *testing.T) {
	r := NewRegistry()
	for name := range r.Unary {
		if !r.Known(name) {
			t.Errorf("Known(%q) = false, want true (unary)", name)
		}
	}
	for name := range r.Binary {
		if !r.Known(name) {
			t.Errorf("Known(%q) = false, want true (binary)", name)
		}
	}
	for name := range r.Variadic {
		if !r.Known(name) {
			t.Errorf("Known(%q) = false, want true (variadic)", name)
		}
	}
	if r.Known("not_a_real_primop") {
		t.Errorf("Known(bogus name) = true, want false")
	}
}

func TestRegistryCoreNamesPresent(t *testing.T) {
	r := NewRegistry()
	wantUnary := []string{"pow2", "abs_int", "not_bits", "not", "count_leading_zeros"}
	for _, n := range wantUnary {
		if _, ok := r.Unary[n]; !ok {
			t.Errorf("missing unary primop %q", n)
		}
	}
	wantBinary := []string{"add_int", "add_bits", "eq_anything", "op_eq", "vector_access"}
	for _, n := range wantBinary {
		if _, ok := r.Binary[n]; !ok {
			t.Errorf("missing binary primop %q", n)
		}
	}
	wantVariadic := []string{"ite", "set_slice!", "op_slice", "vector_update", "bad_read", "bad_write", "elf_entry", "sail_assert"}
	for _, n := range wantVariadic {
		if _, ok := r.Variadic[n]; !ok {
			t.Errorf("missing variadic primop %q", n)
		}
	}
}

func TestRealPrimopsAlwaysUnimplemented(t *testing.T) {
	r := NewRegistry()
	f, ok := r.Variadic["add_real"]
	if !ok {
		t.Fatal("add_real not registered")
	}
	_, err := f(nil, nil, nil)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrUnimplemented {
		t.Errorf("add_real error = %v, want ExecError{Kind: ErrUnimplemented}", err)
	}
}
