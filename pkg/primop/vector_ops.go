package primop

import (
	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// vector_ops.go implements finite random-access Vector primops. A
// symbolic index forces an ite chain over every element, per spec.md
// §4.1. vector_access is registered as a binary primop and vector_update
// through the ternary adapter, so neither receives a LocalFrame.

func vectorAccess(vecV, idxV value.Value, s smt.Solver) (value.Value, error) {
	vec, ok := vecV.AsVector()
	if !ok {
		return value.Value{}, typeErr("vector_access: expected Vector, got %v", vecV.Kind())
	}
	idx, idxok := toI128(idxV)
	if idxok && isConcreteScalar(idxV) {
		i := idx.Int64()
		if i < 0 || i >= int64(len(vec)) {
			return value.Value{}, outOfBoundsErr("vector_access: index %d out of range [0,%d)", i, len(vec))
		}
		return vec[i], nil
	}
	if len(vec) == 0 {
		return value.Value{}, outOfBoundsErr("vector_access: empty vector")
	}
	result := vec[len(vec)-1]
	for i := len(vec) - 2; i >= 0; i-- {
		eq, err := eqInt(idxV, value.I64(int64(i)), s)
		if err != nil {
			return value.Value{}, err
		}
		result, err = ite(eq, vec[i], result, s)
		if err != nil {
			return value.Value{}, err
		}
	}
	return result, nil
}

func vectorUpdate(vecV, idxV, newV value.Value, s smt.Solver) (value.Value, error) {
	vec, ok := vecV.AsVector()
	if !ok {
		return value.Value{}, typeErr("vector_update: expected Vector, got %v", vecV.Kind())
	}
	idx, idxok := toI128(idxV)
	if idxok && isConcreteScalar(idxV) {
		i := idx.Int64()
		if i < 0 || i >= int64(len(vec)) {
			return value.Value{}, outOfBoundsErr("vector_update: index %d out of range [0,%d)", i, len(vec))
		}
		out := make([]value.Value, len(vec))
		copy(out, vec)
		out[i] = newV
		return value.VectorVal(out), nil
	}
	out := make([]value.Value, len(vec))
	for i, elem := range vec {
		eq, err := eqInt(idxV, value.I64(int64(i)), s)
		if err != nil {
			return value.Value{}, err
		}
		merged, err := ite(eq, newV, elem, s)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = merged
	}
	return value.VectorVal(out), nil
}

func vectorLength(a value.Value, s smt.Solver) (value.Value, error) {
	vec, ok := a.AsVector()
	if !ok {
		return value.Value{}, typeErr("vector_length: expected Vector, got %v", a.Kind())
	}
	return value.I64(int64(len(vec))), nil
}
