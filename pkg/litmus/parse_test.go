package litmus

import (
	"testing"

	"github.com/oisee/isla-go/pkg/isa"
)

const sampleLitmus = `
name = "MP"
description = "message passing"
arch = "arm64"
final = "(and (= (register x0 1) 1) (= (register x1 1) 1))"
symbolic_addrs = ["x", "y"]

[[thread]]
assembly = "mov w1, #1\nstr w1, [x0]\nmov w1, #1\nstr w1, [x1]"
[thread.init]
x0 = "x"
x1 = "y"

[[thread]]
assembly = "ldr w0, [x1]\nldr w1, [x0]"
[thread.rename]
p = "x0"
[thread.init]
p = "y"
x1 = "x"
`

func TestParseSampleLitmus(t *testing.T) {
	rec, err := Parse([]byte(sampleLitmus))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Name != "MP" {
		t.Errorf("Name = %q, want MP", rec.Name)
	}
	if len(rec.Threads) != 2 {
		t.Fatalf("len(Threads) = %d, want 2", len(rec.Threads))
	}
	if rec.Final == nil || rec.Final.Kind != PropAnd {
		t.Fatalf("Final = %+v, want parsed And prop", rec.Final)
	}
	if got := rec.Threads[1].Renames["p"]; got != "x0" {
		t.Errorf("thread 1 rename[p] = %q, want x0", got)
	}
	if len(rec.SymbolicAddrs) != 2 {
		t.Errorf("len(SymbolicAddrs) = %d, want 2", len(rec.SymbolicAddrs))
	}
	if got := rec.Threads[0].InitNames["x0"]; got != "x" {
		t.Errorf("thread 0 init[x0] = %q, want x", got)
	}
}

func TestParseMissingName(t *testing.T) {
	_, err := Parse([]byte(`
final = "(= (register x1 0) 1)"
[[thread]]
assembly = "nop"
`))
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestParseMissingThreads(t *testing.T) {
	_, err := Parse([]byte(`
name = "empty"
final = "(= (register x1 0) 1)"
`))
	if err == nil {
		t.Fatal("expected error for missing threads")
	}
}

func TestParseBadFinal(t *testing.T) {
	_, err := Parse([]byte(`
name = "bad"
final = "(xor (= (register x1 0) 1) (= (register x1 0) 0))"
[[thread]]
assembly = "nop"
`))
	if err == nil {
		t.Fatal("expected error propagated from ParseFinal")
	}
}

func TestAssignAddressesDeterministic(t *testing.T) {
	rec := &Record{SymbolicAddrs: []string{"x", "y", "z"}}
	a1 := AssignAddresses(rec, 0x1000, 8)
	a2 := AssignAddresses(rec, 0x1000, 8)
	for _, name := range rec.SymbolicAddrs {
		if a1[name] != a2[name] {
			t.Errorf("assignment for %q not stable: %#x vs %#x", name, a1[name], a2[name])
		}
	}
	if a1["x"] != 0x1000 || a1["y"] != 0x1008 || a1["z"] != 0x1010 {
		t.Errorf("unexpected layout: %+v", a1)
	}
}

func TestResolveRenamesFallsThrough(t *testing.T) {
	th := Thread{Renames: map[string]string{"p": "x0"}}
	if got := ResolveRenames(th, "p"); got != "x0" {
		t.Errorf("ResolveRenames(p) = %q, want x0", got)
	}
	if got := ResolveRenames(th, "x2"); got != "x2" {
		t.Errorf("ResolveRenames(x2) = %q, want x2 unchanged", got)
	}
}

func TestResolveInit(t *testing.T) {
	cfg := isa.Default()
	cfg.RegisterRenames = map[string]string{"p": "x0"}
	addrs := AddressAssignment{"x": 0x100000, "y": 0x100008}
	th := Thread{InitNames: map[string]string{"p": "x", "x1": "y"}}

	init, err := ResolveInit(th, cfg, addrs)
	if err != nil {
		t.Fatalf("ResolveInit: %v", err)
	}
	if len(init) != 2 {
		t.Fatalf("len(init) = %d, want 2", len(init))
	}
	want := map[string]uint64{"x0": 0x100000, "x1": 0x100008}
	for _, ri := range init {
		addr, ok := want[ri.Register]
		if !ok {
			t.Errorf("unexpected resolved register %q", ri.Register)
			continue
		}
		if ri.Address != addr {
			t.Errorf("init[%s] = %#x, want %#x", ri.Register, ri.Address, addr)
		}
	}
}

func TestResolveInitUnknownValueName(t *testing.T) {
	cfg := isa.Default()
	th := Thread{InitNames: map[string]string{"x0": "nonexistent"}}
	if _, err := ResolveInit(th, cfg, AddressAssignment{}); err == nil {
		t.Error("expected error for an init value name absent from symbolic_addrs")
	}
}

func TestResolveInitEmpty(t *testing.T) {
	th := Thread{}
	init, err := ResolveInit(th, isa.Default(), AddressAssignment{})
	if err != nil {
		t.Fatalf("ResolveInit: %v", err)
	}
	if init != nil {
		t.Errorf("ResolveInit(no init) = %+v, want nil", init)
	}
}
