package primop

import (
	"testing"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

func TestInstrAnnounceAddsEvent(t *testing.T) {
	s := smt.NewMockSolver()
	_, err := instrAnnounce([]value.Value{value.StringVal("add x0, x1, x2")}, s, nil)
	if err != nil {
		t.Fatalf("instr_announce: %v", err)
	}
	events := s.Events()
	if len(events) != 1 || events[0].Kind != smt.EventInstr || events[0].Opcode != "add x0, x1, x2" {
		t.Errorf("events = %+v, want one EventInstr", events)
	}
}

func TestCycleCountBumpsSolver(t *testing.T) {
	s := smt.NewMockSolver()
	if _, err := cycleCount(nil, s, nil); err != nil {
		t.Fatalf("cycle_count: %v", err)
	}
	if _, err := cycleCount([]value.Value{value.I64(4)}, s, nil); err != nil {
		t.Fatalf("cycle_count: %v", err)
	}
	if got := s.Cycles(); got != 5 {
		t.Errorf("Cycles() = %d, want 5", got)
	}
}

func TestBadReadInsideRangeReturnsFalse(t *testing.T) {
	s := smt.NewMockSolver()
	frame := &LocalFrame{MemLow: 0x1000, MemHigh: 0x2000}
	got, err := badRead([]value.Value{value.I64(0x1500)}, s, frame)
	if err != nil {
		t.Fatalf("bad_read: %v", err)
	}
	b, ok := got.AsBool()
	if !ok || b {
		t.Errorf("bad_read(in range) = %v, want false", got)
	}
}

func TestBadReadOutsideRangeErrors(t *testing.T) {
	s := smt.NewMockSolver()
	frame := &LocalFrame{MemLow: 0x1000, MemHigh: 0x2000}
	_, err := badRead([]value.Value{value.I64(0x9000)}, s, frame)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrBadRead {
		t.Errorf("bad_read(out of range) err = %v, want ExecError{Kind: ErrBadRead}", err)
	}
}

func TestElfEntryUnsetErrors(t *testing.T) {
	s := smt.NewMockSolver()
	frame := NewLocalFrame()
	_, err := elfEntry(nil, s, frame)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrNoElfEntry {
		t.Errorf("elf_entry(unset) err = %v, want ExecError{Kind: ErrNoElfEntry}", err)
	}
}

func TestElfEntrySetReturnsAddress(t *testing.T) {
	s := smt.NewMockSolver()
	frame := NewLocalFrame()
	frame.SetElfEntry(0x40000)
	got, err := elfEntry(nil, s, frame)
	if err != nil {
		t.Fatalf("elf_entry: %v", err)
	}
	i, ok := got.AsI64()
	if !ok || i != 0x40000 {
		t.Errorf("elf_entry() = %v, want 0x40000", got)
	}
}

func TestSailAssertFailurePropagatesMessage(t *testing.T) {
	s := smt.NewMockSolver()
	_, err := sailAssert([]value.Value{value.BoolVal(false), value.StringVal("register must be zero")}, s, nil)
	ee, ok := err.(*ExecError)
	if !ok || ee.Kind != ErrAssertionFailed || ee.Msg != "register must be zero" {
		t.Errorf("sail_assert(false) err = %v, want ExecError{Kind: ErrAssertionFailed, Msg: ...}", err)
	}
}

func TestSailAssertSuccessReturnsUnit(t *testing.T) {
	s := smt.NewMockSolver()
	got, err := sailAssert([]value.Value{value.BoolVal(true), value.StringVal("ok")}, s, nil)
	if err != nil {
		t.Fatalf("sail_assert: %v", err)
	}
	if got.Kind() != value.KindUnit {
		t.Errorf("sail_assert(true) = %v, want Unit", got)
	}
}
