package primop

import (
	"fmt"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// int_ops.go implements spec.md §4.1's integer arithmetic primops over the
// 128-bit concrete fast path (pkg/value.I128). The binary arithmetic
// primops fall back to 128-bit SMT integer terms when either operand is
// symbolic; pow_int, pow2, abs_int and neg_int are concrete-only and
// return an error for a symbolic operand.

func addInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.Add(y), nil }, "+")
}

func subInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.Sub(y), nil }, "-")
}

func mulInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.Mul(y), nil }, "*")
}

func tdivInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) {
		q, ok := x.Div(y)
		if !ok {
			return value.I128{}, overflowErr("tdiv_int: division by zero")
		}
		return q, nil
	}, "div")
}

func tmodInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) {
		r, ok := x.Mod(y)
		if !ok {
			return value.I128{}, overflowErr("tmod_int: division by zero")
		}
		return r, nil
	}, "mod")
}

func subNat(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.SubNat(y), nil }, "sub_nat")
}

func minInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.Min(y), nil }, "min")
}

func maxInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2Int(a, b, s, func(x, y value.I128) (value.I128, error) { return x.Max(y), nil }, "max")
}

func powInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	ai, aok := toI128(a)
	bi, bok := toI128(b)
	if !aok || !bok || a.IsSymbolic() || b.IsSymbolic() {
		return value.Value{}, unimplementedErr("pow_int: symbolic exponentiation")
	}
	r, err := ai.PowInt(bi)
	if err != nil {
		return value.Value{}, overflowErr("%s", err)
	}
	return value.I128Val(r), nil
}

func pow2(a value.Value, s smt.Solver) (value.Value, error) {
	ai, ok := toI128(a)
	if !ok || a.IsSymbolic() {
		return value.Value{}, unimplementedErr("pow2: symbolic exponent")
	}
	r, err := value.Pow2(ai)
	if err != nil {
		return value.Value{}, overflowErr("%s", err)
	}
	return value.I128Val(r), nil
}

func absInt(a value.Value, s smt.Solver) (value.Value, error) {
	ai, ok := toI128(a)
	if !ok {
		return value.Value{}, typeErr("abs_int: expected integer, got %v", a.Kind())
	}
	if a.IsSymbolic() {
		return value.Value{}, unimplementedErr("abs_int: symbolic")
	}
	return value.I128Val(ai.Abs()), nil
}

func negInt(a value.Value, s smt.Solver) (value.Value, error) {
	ai, ok := toI128(a)
	if !ok {
		return value.Value{}, typeErr("neg_int: expected integer, got %v", a.Kind())
	}
	if a.IsSymbolic() {
		return value.Value{}, unimplementedErr("neg_int: symbolic")
	}
	return value.I128Val(ai.Neg()), nil
}

func intCmp(name string, a, b value.Value, s smt.Solver, concrete func(int) bool, smtOp string) (value.Value, error) {
	ai, aok := toI128(a)
	bi, bok := toI128(b)
	if aok && bok && isConcreteScalar(a) && isConcreteScalar(b) {
		return value.BoolVal(concrete(ai.Cmp(bi))), nil
	}
	aSym, err := liftToIntSym(a, s)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToIntSym(b, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBool, 0, fmt.Sprintf("(%s %%%d %%%d)", smtOp, aSym, bSym))
	return value.Symbolic(sym), nil
}

func eqInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return intCmp("eq_int", a, b, s, func(c int) bool { return c == 0 }, "=")
}

func neqInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	v, err := eqInt(a, b, s)
	if err != nil {
		return value.Value{}, err
	}
	if bv, ok := v.AsBool(); ok {
		return value.BoolVal(!bv), nil
	}
	return v, nil
}

func ltInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return intCmp("lt_int", a, b, s, func(c int) bool { return c < 0 }, "<")
}

func lteqInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return intCmp("lteq_int", a, b, s, func(c int) bool { return c <= 0 }, "<=")
}

func gtInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return intCmp("gt_int", a, b, s, func(c int) bool { return c > 0 }, ">")
}

func gteqInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	return intCmp("gteq_int", a, b, s, func(c int) bool { return c >= 0 }, ">=")
}
