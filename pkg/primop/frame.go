package primop

import "github.com/oisee/isla-go/pkg/value"

// LocalFrame holds the per-execution state a variadic primop may need
// when it interacts with memory, the ELF entry point, or vector-of-value
// updates (spec.md §4.1: "Frame access is only granted when the
// operation interacts with memory, ELF entry point, or vector-of-value
// updates"). Created per path and dropped at end (spec.md §3
// "Lifetimes"); never shared between paths (spec.md §5).
type LocalFrame struct {
	// ElfEntry is the program's entry-point address, set once the
	// executor (out of scope) has loaded an ELF image. elf_entry fails
	// with ErrNoElfEntry while this is unset.
	ElfEntry    uint64
	elfEntrySet bool

	// MemLow and MemHigh bound the address range used by the bad_read/
	// bad_write primops' sentinel range checks. The frame holds no memory
	// contents; the real memory model is out of scope (spec.md §1) — this
	// is only enough to let bad_read/bad_write observe "out of configured
	// range".
	MemLow  uint64
	MemHigh uint64
}

// NewLocalFrame constructs a fresh per-path frame, per SPEC_FULL §11's
// documented construction point for the (out-of-scope) executor.
func NewLocalFrame() *LocalFrame {
	return &LocalFrame{}
}

// SetElfEntry records the loaded ELF's entry point.
func (f *LocalFrame) SetElfEntry(addr uint64) {
	f.ElfEntry = addr
	f.elfEntrySet = true
}

// ElfEntryValue returns the entry-point value, or ErrNoElfEntry if unset.
func (f *LocalFrame) ElfEntryValue() (value.Value, error) {
	if !f.elfEntrySet {
		return value.Value{}, noElfEntryErr()
	}
	return value.I64(int64(f.ElfEntry)), nil
}
