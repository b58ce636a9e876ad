package primop

import (
	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// string_ops.go implements the small set of string primops spec.md §4.1
// allows: equality, length and concatenation. Strings are never
// symbolic in this domain (spec.md §3), so these never reach the
// solver.

func eqString(a, b value.Value, s smt.Solver) (value.Value, error) {
	sa, ok := a.AsString()
	if !ok {
		return value.Value{}, typeErr("eq_string: expected String, got %v", a.Kind())
	}
	sb, ok := b.AsString()
	if !ok {
		return value.Value{}, typeErr("eq_string: expected String, got %v", b.Kind())
	}
	return value.BoolVal(sa == sb), nil
}

func stringLength(a value.Value, s smt.Solver) (value.Value, error) {
	sa, ok := a.AsString()
	if !ok {
		return value.Value{}, typeErr("string_length: expected String, got %v", a.Kind())
	}
	return value.I64(int64(len(sa))), nil
}

func concatStr(a, b value.Value, s smt.Solver) (value.Value, error) {
	sa, ok := a.AsString()
	if !ok {
		return value.Value{}, typeErr("concat_str: expected String, got %v", a.Kind())
	}
	sb, ok := b.AsString()
	if !ok {
		return value.Value{}, typeErr("concat_str: expected String, got %v", b.Kind())
	}
	return value.StringVal(sa + sb), nil
}
