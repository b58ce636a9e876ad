package symtab

import "testing"

func TestPreseededNames(t *testing.T) {
	tbl := New()
	tests := []struct {
		name string
		want Name
	}{
		{"return", NameReturn},
		{"current_exception", NameCurrentException},
		{"have_exception", NameHaveException},
		{"sail_assert", NameSailAssert},
	}
	for _, tc := range tests {
		n, ok := tbl.Lookup(tc.name)
		if !ok || n != tc.want {
			t.Errorf("Lookup(%q) = (%d,%v), want (%d,true)", tc.name, n, ok, tc.want)
		}
	}
}

func TestInternIsStable(t *testing.T) {
	tbl := New()
	a := tbl.Intern("x0")
	b := tbl.Intern("x0")
	if a != b {
		t.Errorf("Intern not stable: %d != %d", a, b)
	}
	if tbl.String(a) != "x0" {
		t.Errorf("String(%d) = %q, want x0", a, tbl.String(a))
	}
}

func TestInternDense(t *testing.T) {
	tbl := New()
	base := tbl.Len()
	tbl.Intern("pc")
	tbl.Intern("sp")
	if tbl.Len() != base+2 {
		t.Errorf("Len() = %d, want %d", tbl.Len(), base+2)
	}
}

func TestFreezePanicsOnNewName(t *testing.T) {
	tbl := New()
	tbl.Intern("known")
	tbl.Freeze()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic interning after Freeze")
		}
	}()
	tbl.Intern("unknown")
}

func TestFreezeAllowsKnownLookup(t *testing.T) {
	tbl := New()
	n := tbl.Intern("known")
	tbl.Freeze()
	if got := tbl.Intern("known"); got != n {
		t.Errorf("re-Intern of known name after freeze changed: %d != %d", got, n)
	}
}
