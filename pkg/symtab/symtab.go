// Package symtab implements the symbol-table interner: source
// identifiers (&str) map to dense 32-bit names. The table outlives the
// IR it names (spec.md §3 "Lifetimes").
//
// Grounded on the teacher's pkg/inst package: a dense enum (OpCode
// uint16) paired with a parallel lookup table (Catalog). Here the dense
// names are discovered at parse time rather than fixed at compile time,
// so the "enum" becomes a growable interner instead of const block, but
// the "dense integer name + O(1) side table" shape is the same.
package symtab

import "sync"

// Name is a dense, interned identifier.
type Name uint32

// Well-known preseeded names, per spec.md §3.
const (
	NameReturn Name = iota
	NameCurrentException
	NameHaveException
	NameSailAssert
	NameInternalVectorUpdate // internal vector-update operator
	NameInternalVectorInit   // internal vector-init operator
	firstUserName
)

var preseeded = []string{
	"return",
	"current_exception",
	"have_exception",
	"sail_assert",
	"%vector_update",
	"%vector_init",
}

// Table interns strings to dense Names. Safe for concurrent reads once
// frozen; writes (Intern of a new string) take an exclusive lock, matching
// spec.md §5 "SharedState... immutable after initialization... read
// concurrently by all paths."
type Table struct {
	mu      sync.RWMutex
	byName  map[string]Name
	byID    []string
	frozen  bool
}

// New creates a table preseeded with the well-known names.
func New() *Table {
	t := &Table{
		byName: make(map[string]Name, len(preseeded)*2),
		byID:   make([]string, len(preseeded)),
	}
	for i, s := range preseeded {
		t.byName[s] = Name(i)
		t.byID[i] = s
	}
	return t
}

// Intern returns the dense Name for s, allocating a fresh one if s has
// not been seen before. Panics if the table has been frozen.
func (t *Table) Intern(s string) Name {
	t.mu.RLock()
	if n, ok := t.byName[s]; ok {
		t.mu.RUnlock()
		return n
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.byName[s]; ok {
		return n
	}
	if t.frozen {
		panic("symtab: Intern on frozen table: " + s)
	}
	n := Name(len(t.byID))
	t.byID = append(t.byID, s)
	t.byName[s] = n
	return n
}

// Lookup returns the Name for s without interning, reporting whether it
// already exists.
func (t *Table) Lookup(s string) (Name, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.byName[s]
	return n, ok
}

// String resolves a Name back to its source text.
func (t *Table) String(n Name) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(n) >= len(t.byID) {
		return "<?>"
	}
	return t.byID[n]
}

// Freeze marks the table read-only; subsequent Intern calls on unseen
// strings panic. Called once the IR pre-passes have finished discovering
// all identifiers, matching spec.md §5's "immutable after initialization".
func (t *Table) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Len returns the number of interned names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
