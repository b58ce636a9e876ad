// Package primop implements the primitive-operation layer of spec.md §4.1:
// integer, bit-vector, string, list and vector operations over
// pkg/value.Value, dispatching to either concrete arithmetic or SMT term
// construction via pkg/smt.Solver.
package primop

import "fmt"

// ErrKind is the ExecError taxonomy of spec.md §7.
type ErrKind uint8

const (
	ErrType ErrKind = iota
	ErrOverflow
	ErrSymbolicLength
	ErrOutOfBounds
	ErrAssertionFailed
	ErrBadRead
	ErrBadWrite
	ErrNoElfEntry
	ErrUnimplemented
)

func (k ErrKind) String() string {
	switch k {
	case ErrType:
		return "Type"
	case ErrOverflow:
		return "Overflow"
	case ErrSymbolicLength:
		return "SymbolicLength"
	case ErrOutOfBounds:
		return "OutOfBounds"
	case ErrAssertionFailed:
		return "AssertionFailed"
	case ErrBadRead:
		return "BadRead"
	case ErrBadWrite:
		return "BadWrite"
	case ErrNoElfEntry:
		return "NoElfEntry"
	case ErrUnimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// ExecError is the typed error propagated verbatim by every primop, per
// spec.md §7. Kind is the taxonomy tag; Msg carries a debuggable detail
// string (required for ErrType, optional elsewhere).
type ExecError struct {
	Kind ErrKind
	Msg  string
}

func (e *ExecError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func typeErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrType, Msg: fmt.Sprintf(format, args...)}
}

func overflowErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrOverflow, Msg: fmt.Sprintf(format, args...)}
}

func symbolicLengthErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrSymbolicLength, Msg: fmt.Sprintf(format, args...)}
}

func outOfBoundsErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrOutOfBounds, Msg: fmt.Sprintf(format, args...)}
}

// AssertionFailed constructs the ErrAssertionFailed variant carrying the
// user-supplied message (spec.md §7).
func AssertionFailed(userMsg string) *ExecError {
	return &ExecError{Kind: ErrAssertionFailed, Msg: userMsg}
}

func badReadErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrBadRead, Msg: fmt.Sprintf(format, args...)}
}

func badWriteErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrBadWrite, Msg: fmt.Sprintf(format, args...)}
}

func noElfEntryErr() *ExecError {
	return &ExecError{Kind: ErrNoElfEntry, Msg: "elf_entry invoked before entry binding exists"}
}

func unimplementedErr(name string) *ExecError {
	return &ExecError{Kind: ErrUnimplemented, Msg: name + ": real-number semantics are not implemented"}
}
