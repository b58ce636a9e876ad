package primop

import (
	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// UnaryFn, BinaryFn and VariadicFn are the three primop shapes of
// spec.md §4.1's registry: "three string-keyed function-pointer tables
// (unary/binary/variadic), populated at startup." Variadic covers every
// arity other than one and two, including the many ternary primops
// (set_slice!, ite, vector_update, op_slice) and the handful that need
// LocalFrame (memory/ELF operations).
type UnaryFn func(a value.Value, s smt.Solver) (value.Value, error)
type BinaryFn func(a, b value.Value, s smt.Solver) (value.Value, error)
type VariadicFn func(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error)

// Registry is the populated set of all known primops, keyed by name.
type Registry struct {
	Unary    map[string]UnaryFn
	Binary   map[string]BinaryFn
	Variadic map[string]VariadicFn
}

// Known reports whether name is registered under any of the three
// tables, used by pkg/ir's ValidatePrimopNamesKnown.
func (r *Registry) Known(name string) bool {
	if _, ok := r.Unary[name]; ok {
		return true
	}
	if _, ok := r.Binary[name]; ok {
		return true
	}
	if _, ok := r.Variadic[name]; ok {
		return true
	}
	return false
}

// ternary adapts a fixed 3-argument function into the Variadic shape,
// for primops whose arity is exactly three and never needs the frame.
func ternary(f func(a, b, c value.Value, s smt.Solver) (value.Value, error)) VariadicFn {
	return func(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
		if len(args) != 3 {
			return value.Value{}, typeErr("expected 3 arguments, got %d", len(args))
		}
		return f(args[0], args[1], args[2], s)
	}
}

// NewRegistry builds and returns the fully populated primop registry,
// the startup-time step of spec.md §4.2 ("populated at startup").
func NewRegistry() *Registry {
	r := &Registry{
		Unary:    map[string]UnaryFn{},
		Binary:   map[string]BinaryFn{},
		Variadic: map[string]VariadicFn{},
	}

	// Integer arithmetic.
	r.Binary["add_int"] = addInt
	r.Binary["sub_int"] = subInt
	r.Binary["mul_int"] = mulInt
	r.Binary["tdiv_int"] = tdivInt
	r.Binary["tmod_int"] = tmodInt
	r.Binary["sub_nat"] = subNat
	r.Binary["min_int"] = minInt
	r.Binary["max_int"] = maxInt
	r.Binary["pow_int"] = powInt
	r.Unary["pow2"] = pow2
	r.Unary["abs_int"] = absInt
	r.Unary["neg_int"] = negInt
	r.Binary["eq_int"] = eqInt
	r.Binary["neq_int"] = neqInt
	r.Binary["lt_int"] = ltInt
	r.Binary["lteq_int"] = lteqInt
	r.Binary["gt_int"] = gtInt
	r.Binary["gteq_int"] = gteqInt

	// Bit-vector arithmetic and bitwise.
	r.Binary["add_bits"] = addBits
	r.Binary["sub_bits"] = subBits
	r.Binary["and_bits"] = andBits
	r.Binary["or_bits"] = orBits
	r.Binary["xor_bits"] = xorBits
	r.Unary["not_bits"] = notBits
	r.Binary["eq_bits"] = eqBits
	r.Binary["neq_bits"] = neqBits
	r.Binary["add_bits_int"] = addBitsInt
	r.Binary["sub_bits_int"] = subBitsInt
	r.Binary["zero_extend"] = zeroExtend
	r.Binary["sign_extend"] = signExtend
	r.Binary["append"] = appendBits
	r.Binary["shiftl"] = shiftl
	r.Binary["shiftr"] = shiftr
	r.Binary["arith_shiftr"] = arithShiftr
	r.Binary["replicate_bits"] = replicateBits
	r.Binary["align_bits"] = alignBits
	r.Unary["count_leading_zeros"] = countLeadingZeros

	// Slicing family (ternary).
	r.Variadic["op_slice"] = ternary(opSlice)
	r.Variadic["subrange_bits"] = ternary(subrangeBits)
	r.Variadic["set_slice!"] = ternary(setSliceBang)
	r.Variadic["get_slice_int"] = ternary(getSliceInt)

	// Boolean connectives and generic equality.
	r.Unary["not"] = notBool
	r.Binary["and_bool"] = andBool
	r.Binary["or_bool"] = orBool
	r.Unary["bit_to_bool"] = bitToBool
	r.Binary["eq_anything"] = eqAnything
	r.Binary["neq_anything"] = neqAnything
	r.Binary["op_eq"] = opEq
	r.Variadic["ite"] = ternary(ite)

	// Strings.
	r.Binary["eq_string"] = eqString
	r.Unary["string_length"] = stringLength
	r.Binary["concat_str"] = concatStr

	// Vectors.
	r.Binary["vector_access"] = vectorAccess
	r.Variadic["vector_update"] = ternary(vectorUpdate)
	r.Unary["vector_length"] = vectorLength

	// Events, memory and the ELF/frame-dependent handful.
	r.Variadic["instr_announce"] = instrAnnounce
	r.Variadic["branch_announce"] = branchAnnounce
	r.Variadic["barrier"] = barrier
	r.Variadic["cache_maintenance"] = cacheMaintenance
	r.Variadic["mark_register"] = markRegister
	r.Variadic["wakeup_request"] = wakeupRequest
	r.Variadic["cycle_count"] = cycleCount
	r.Variadic["bad_read"] = badRead
	r.Variadic["bad_write"] = badWrite
	r.Variadic["elf_entry"] = elfEntry
	r.Variadic["sail_assert"] = sailAssert

	// Forbidden real-number primops (spec.md §4.1: "always fails with
	// Unimplemented — no real-number semantics are modeled").
	for _, name := range []string{"add_real", "sub_real", "mul_real", "div_real", "neg_real", "sqrt_real", "round_down", "round_up", "to_real", "eq_real", "lt_real", "gt_real"} {
		name := name
		r.Variadic[name] = func(args []value.Value, s smt.Solver, frame *LocalFrame) (value.Value, error) {
			return value.Value{}, unimplementedErr(name)
		}
	}

	return r
}
