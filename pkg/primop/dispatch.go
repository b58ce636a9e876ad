package primop

import (
	"fmt"
	"math/big"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// dispatch.go implements the generic concrete/symbolic lift described in
// spec.md §9: "factor into a generic lift: accept a closure for concrete
// execution and an SMT-term builder; the shared scaffolding handles
// lifting and symbol allocation." Grounded on the teacher's
// pkg/search/worker.go processTask/processTaskMasked pair — one shape,
// parameterized by a predicate/builder closure, reused for the
// full-match and masked-match cases.

// isConcreteScalar reports whether v carries no symbolic handle.
func isConcreteScalar(v value.Value) bool { return !v.IsSymbolic() }

// bvWidthOf resolves the bit-width of a Bits-or-Symbolic value, per
// spec.md §4.1 "width of symbolic bit-vectors is obtained from the
// solver facade."
func bvWidthOf(v value.Value, solver smt.Solver) (uint32, error) {
	if bv, ok := v.AsBits(); ok {
		return bv.Width(), nil
	}
	if sym, ok := v.Sym(); ok {
		if w, ok := solver.Length(sym); ok {
			return w, nil
		}
		return 0, symbolicLengthErr("solver has no recorded width for symbol")
	}
	return 0, typeErr("value has no bit-vector width: %v", v.Kind())
}

// liftToBVSym returns v's symbol handle, lifting a concrete Bits value to
// a fresh `define-const` if necessary (spec.md §4.1 "lift each concrete
// operand to a fresh-typed SMT term (smt_value) that matches the
// symbolic operand's sort").
func liftToBVSym(v value.Value, width uint32, solver smt.Solver) (value.Sym, error) {
	if sym, ok := v.Sym(); ok {
		return sym, nil
	}
	bv, ok := v.AsBits()
	if !ok {
		return 0, typeErr("expected Bits or Symbolic value, got %v", v.Kind())
	}
	return solver.DefineConst(smt.SortBV, width, fmt.Sprintf("(_ bv%s %d)", bv.Unsigned().String(), width)), nil
}

// lift1BV dispatches a unary bit-vector primop: concrete fast path when a
// is concrete, else a single define-const wrapping smtOp.
func lift1BV(a value.Value, solver smt.Solver, concrete func(value.BV) value.BV, smtOp string) (value.Value, error) {
	width, err := bvWidthOf(a, solver)
	if err != nil {
		return value.Value{}, err
	}
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		return value.BitsVal(concrete(bv)), nil
	}
	aSym, err := liftToBVSym(a, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	sym := solver.DefineConst(smt.SortBV, width, fmt.Sprintf("(%s %%%d)", smtOp, aSym))
	return value.Symbolic(sym), nil
}

// lift2BV dispatches a binary same-width bit-vector primop per the
// dispatch policy of spec.md §4.1: concrete fast path when both operands
// are concrete, otherwise lift and build one define-const.
func lift2BV(a, b value.Value, solver smt.Solver, concrete func(x, y value.BV) value.BV, smtOp string) (value.Value, error) {
	if abv, aok := a.AsBits(); aok && isConcreteScalar(a) {
		if bbv, bok := b.AsBits(); bok && isConcreteScalar(b) {
			return value.BitsVal(concrete(abv, bbv)), nil
		}
	}
	width, err := bvWidthOf(a, solver)
	if err != nil {
		return value.Value{}, err
	}
	if bw, err2 := bvWidthOf(b, solver); err2 == nil && bw != width {
		// widths genuinely differ — caller's primop is responsible for
		// coercion (e.g. shift amounts); this generic path requires equal
		// widths and is only used where the IR already guarantees that.
		return value.Value{}, typeErr("%s: mismatched bit-vector widths %d and %d", smtOp, width, bw)
	}
	aSym, err := liftToBVSym(a, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToBVSym(b, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	sym := solver.DefineConst(smt.SortBV, width, fmt.Sprintf("(%s %%%d %%%d)", smtOp, aSym, bSym))
	return value.Symbolic(sym), nil
}

// lift2BoolFromBV dispatches a binary bit-vector comparison that produces
// a Bool (eq_bits, unsigned/signed order comparisons).
func lift2BoolFromBV(a, b value.Value, solver smt.Solver, concrete func(x, y value.BV) bool, smtOp string) (value.Value, error) {
	if abv, aok := a.AsBits(); aok && isConcreteScalar(a) {
		if bbv, bok := b.AsBits(); bok && isConcreteScalar(b) {
			return value.BoolVal(concrete(abv, bbv)), nil
		}
	}
	width, err := bvWidthOf(a, solver)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToBVSym(b, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	sym := solver.DefineConst(smt.SortBool, 0, fmt.Sprintf("(%s %%%d %%%d)", smtOp, aSym, bSym))
	return value.Symbolic(sym), nil
}

// toI128 coerces an I64/I128 value into I128, for the 128-bit integer
// fast path of spec.md §4.1 "Integer arithmetic".
func toI128(v value.Value) (value.I128, bool) {
	if i, ok := v.AsI128(); ok {
		return i, true
	}
	if i, ok := v.AsI64(); ok {
		return value.I128FromInt64(i), true
	}
	return value.I128{}, false
}

// liftToIntSym lifts a concrete integer value to a fresh 128-bit SMT
// integer constant, or returns its existing symbol.
func liftToIntSym(v value.Value, solver smt.Solver) (value.Sym, error) {
	if sym, ok := v.Sym(); ok {
		return sym, nil
	}
	i, ok := toI128(v)
	if !ok {
		return 0, typeErr("expected integer or Symbolic value, got %v", v.Kind())
	}
	return solver.DefineConst(smt.SortInt, 128, i.String()), nil
}

// isPowerOfTwo reports whether x is a positive power of two.
func isPowerOfTwo(x value.I128) bool {
	b := x.BigInt()
	if b.Sign() <= 0 {
		return false
	}
	return new(big.Int).And(b, new(big.Int).Sub(b, big.NewInt(1))).Sign() == 0
}

// sailUnsigned reinterprets a width-bit bitvector as an unsigned
// 128-bit integer value, grounded on the original's sail_unsigned: a
// concrete Bits value reads off its unsigned() big.Int directly; a
// symbolic one is zero-extended to 128 bits and given a fresh Int-sorted
// symbol.
func sailUnsigned(a value.Value, width uint32, solver smt.Solver) (value.Value, error) {
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		return value.I128Val(value.I128FromBigInt(bv.Unsigned())), nil
	}
	aSym, err := liftToBVSym(a, width, solver)
	if err != nil {
		return value.Value{}, err
	}
	sym := solver.DefineConst(smt.SortInt, 128, fmt.Sprintf("(zero_extend %d %%%d)", 128-width, aSym))
	return value.Symbolic(sym), nil
}

// lift2Int dispatches a binary integer primop per spec.md §4.1's
// "symbolic path uses bvadd/bvsub/bvmul/bvsdiv/bvsmod/bvshl/bvashr/bvudiv
// over 128-bit terms" — here abstracted behind a named SMT op string.
func lift2Int(a, b value.Value, solver smt.Solver, concrete func(x, y value.I128) (value.I128, error), smtOp string) (value.Value, error) {
	if ai, aok := toI128(a); aok && isConcreteScalar(a) {
		if bi, bok := toI128(b); bok && isConcreteScalar(b) {
			r, err := concrete(ai, bi)
			if err != nil {
				return value.Value{}, err
			}
			return value.I128Val(r), nil
		}
	}
	aSym, err := liftToIntSym(a, solver)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToIntSym(b, solver)
	if err != nil {
		return value.Value{}, err
	}
	sym := solver.DefineConst(smt.SortInt, 128, fmt.Sprintf("(%s %%%d %%%d)", smtOp, aSym, bSym))
	return value.Symbolic(sym), nil
}
