package smt

import (
	"sync"
	"sync/atomic"

	"github.com/oisee/isla-go/pkg/value"
)

// MockSolver is an in-memory Solver used only by tests. It never actually discharges
// satisfiability queries (CheckSat always reports satisfiable) — real
// solving is an external collaborator per spec.md §1.
//
// Grounded on the teacher's pkg/search/worker.go WorkerPool: a
// sync/atomic-backed counter for symbol names plus a mutex-guarded event
// log, the same "atomic counters + mutex-guarded shared slice" shape.
type MockSolver struct {
	mu     sync.Mutex
	widths map[value.Sym]uint32
	events []Event
	cycles atomic.Uint64
	next   atomic.Uint32
}

// NewMockSolver creates an empty mock solver.
func NewMockSolver() *MockSolver {
	return &MockSolver{widths: make(map[value.Sym]uint32)}
}

func (m *MockSolver) FreshSym(sort Sort, width uint32) value.Sym {
	id := value.Sym(m.next.Add(1))
	if sort == SortBV {
		m.mu.Lock()
		m.widths[id] = width
		m.mu.Unlock()
	}
	return id
}

func (m *MockSolver) DefineConst(sort Sort, width uint32, termDesc string) value.Sym {
	return m.FreshSym(sort, width)
}

func (m *MockSolver) AssertFact(termDesc string) {}

func (m *MockSolver) CheckSat() (bool, error) { return true, nil }

func (m *MockSolver) Length(s value.Sym) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.widths[s]
	return w, ok
}

func (m *MockSolver) AddEvent(e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

func (m *MockSolver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockSolver) BumpCycle(n uint64) { m.cycles.Add(n) }

// Cycles returns the accumulated cycle count (test/debug helper).
func (m *MockSolver) Cycles() uint64 { return m.cycles.Load() }
