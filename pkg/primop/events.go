package primop

import (
	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// events.go implements the variadic primops that publish to the
// per-path event log (spec.md §4.1 "Events published to the solver")
// and the handful that read LocalFrame: bad_read/bad_write (memory
// range sentinel) and elf_entry (ELF entry point). It also holds
// cycle_count and sail_assert, which do not read the frame.

func instrAnnounce(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, typeErr("instr_announce: expected 1 argument, got %d", len(args))
	}
	op, ok := args[0].AsString()
	if !ok {
		return value.Value{}, typeErr("instr_announce: expected String opcode description")
	}
	s.AddEvent(smt.Event{Kind: smt.EventInstr, Opcode: op})
	return value.Unit(), nil
}

func branchAnnounce(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, typeErr("branch_announce: expected 1 argument, got %d", len(args))
	}
	addr, ok := toI128(args[0])
	if !ok || args[0].IsSymbolic() {
		return value.Value{}, typeErr("branch_announce: expected concrete integer address")
	}
	s.AddEvent(smt.Event{Kind: smt.EventBranch, Address: uint64(addr.Int64())})
	return value.Unit(), nil
}

func barrier(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, typeErr("barrier: expected 1 argument, got %d", len(args))
	}
	kind, ok := args[0].AsString()
	if !ok {
		return value.Value{}, typeErr("barrier: expected String barrier kind")
	}
	s.AddEvent(smt.Event{Kind: smt.EventBarrier, Barrier: kind})
	return value.Unit(), nil
}

func cacheMaintenance(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, typeErr("cache_maintenance: expected 2 arguments, got %d", len(args))
	}
	op, ok := args[0].AsString()
	if !ok {
		return value.Value{}, typeErr("cache_maintenance: expected String operation name")
	}
	addr, ok := toI128(args[1])
	if !ok || args[1].IsSymbolic() {
		return value.Value{}, typeErr("cache_maintenance: expected concrete integer address")
	}
	s.AddEvent(smt.Event{Kind: smt.EventCacheOp, CacheOp: op, Address: uint64(addr.Int64())})
	return value.Unit(), nil
}

func markRegister(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, typeErr("mark_register: expected at least 1 argument")
	}
	mark, ok := args[0].AsString()
	if !ok {
		return value.Value{}, typeErr("mark_register: expected String mark")
	}
	regs := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		r, ok := a.AsString()
		if !ok {
			return value.Value{}, typeErr("mark_register: expected String register name")
		}
		regs = append(regs, r)
	}
	s.AddEvent(smt.Event{Kind: smt.EventMarkReg, Mark: mark, Regs: regs})
	return value.Unit(), nil
}

func wakeupRequest(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, typeErr("wakeup_request: expected 0 arguments, got %d", len(args))
	}
	s.AddEvent(smt.Event{Kind: smt.EventWakeupRequest})
	return value.Unit(), nil
}

func cycleCount(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	n := uint64(1)
	if len(args) == 1 {
		i, ok := toI128(args[0])
		if !ok || args[0].IsSymbolic() {
			return value.Value{}, typeErr("cycle_count: expected a concrete integer increment")
		}
		n = uint64(i.Int64())
	} else if len(args) != 0 {
		return value.Value{}, typeErr("cycle_count: expected 0 or 1 arguments, got %d", len(args))
	}
	s.BumpCycle(n)
	return value.Unit(), nil
}

func badRead(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, typeErr("bad_read: expected 1 argument, got %d", len(args))
	}
	addr, ok := toI128(args[0])
	if !ok || args[0].IsSymbolic() {
		return value.Value{}, typeErr("bad_read: expected concrete integer address")
	}
	a := uint64(addr.Int64())
	if frame != nil && frame.MemLow <= a && a < frame.MemHigh {
		return value.BoolVal(false), nil
	}
	return value.Value{}, badReadErr("address 0x%x outside configured memory range", a)
}

func badWrite(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, typeErr("bad_write: expected 1 argument, got %d", len(args))
	}
	addr, ok := toI128(args[0])
	if !ok || args[0].IsSymbolic() {
		return value.Value{}, typeErr("bad_write: expected concrete integer address")
	}
	a := uint64(addr.Int64())
	if frame != nil && frame.MemLow <= a && a < frame.MemHigh {
		return value.BoolVal(false), nil
	}
	return value.Value{}, badWriteErr("address 0x%x outside configured memory range", a)
}

func elfEntry(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, typeErr("elf_entry: expected 0 arguments, got %d", len(args))
	}
	if frame == nil {
		return value.Value{}, noElfEntryErr()
	}
	return frame.ElfEntryValue()
}

// sailAssert is the preseeded sail_assert primop (pkg/symtab.NameSailAssert):
// (condition, message) -> Unit, or ErrAssertionFailed carrying message.
func sailAssert(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, typeErr("sail_assert: expected 2 arguments, got %d", len(args))
	}
	cond, ok := args[0].AsBool()
	if !ok || args[0].IsSymbolic() {
		return value.Value{}, typeErr("sail_assert: condition must be a concrete Bool")
	}
	msg, _ := args[1].AsString()
	if !cond {
		return value.Value{}, AssertionFailed(msg)
	}
	return value.Unit(), nil
}
