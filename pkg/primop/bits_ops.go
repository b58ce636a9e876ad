package primop

import (
	"fmt"
	"math/big"

	"github.com/oisee/isla-go/pkg/smt"
	"github.com/oisee/isla-go/pkg/value"
)

// bits_ops.go implements spec.md §4.1's bit-vector primops: arithmetic,
// bitwise, width-changing, and the slice/append family, all routed
// through lift1BV/lift2BV so the concrete/symbolic choice is made once.

func addBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BV(a, b, s, func(x, y value.BV) value.BV { return x.Add(y) }, "bvadd")
}

func subBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BV(a, b, s, func(x, y value.BV) value.BV { return x.Sub(y) }, "bvsub")
}

func andBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BV(a, b, s, func(x, y value.BV) value.BV { return x.And(y) }, "bvand")
}

func orBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BV(a, b, s, func(x, y value.BV) value.BV { return x.Or(y) }, "bvor")
}

func xorBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BV(a, b, s, func(x, y value.BV) value.BV { return x.Xor(y) }, "bvxor")
}

func notBits(a value.Value, s smt.Solver) (value.Value, error) {
	return lift1BV(a, s, func(x value.BV) value.BV { return x.Not() }, "bvnot")
}

func eqBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	return lift2BoolFromBV(a, b, s, func(x, y value.BV) bool { return x.Equal(y) }, "=")
}

func neqBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	v, err := eqBits(a, b, s)
	if err != nil {
		return value.Value{}, err
	}
	if bv, ok := v.AsBool(); ok {
		return value.BoolVal(!bv), nil
	}
	return v, nil
}

// addBitsInt adds a concrete or symbolic integer to a bit-vector,
// truncated to the bit-vector's width (spec.md §4.1 "mixed bits/int
// arithmetic").
func addBitsInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	abv, aok := a.AsBits()
	bi, bok := toI128(b)
	if aok && bok && isConcreteScalar(a) && isConcreteScalar(b) {
		return value.BitsVal(abv.AddI128(bi)), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToIntSym(b, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, width, "(bvadd %"+symStr(aSym)+" ((_ int2bv "+widthStr(width)+") %"+symStr(bSym)+"))")
	return value.Symbolic(sym), nil
}

func subBitsInt(a, b value.Value, s smt.Solver) (value.Value, error) {
	abv, aok := a.AsBits()
	bi, bok := toI128(b)
	if aok && bok && isConcreteScalar(a) && isConcreteScalar(b) {
		return value.BitsVal(abv.SubI128(bi)), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToIntSym(b, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, width, "(bvsub %"+symStr(aSym)+" ((_ int2bv "+widthStr(width)+") %"+symStr(bSym)+"))")
	return value.Symbolic(sym), nil
}

// zeroExtend widens a to the width named by b (a concrete integer length).
func zeroExtend(a, b value.Value, s smt.Solver) (value.Value, error) {
	return extendBy(a, b, s, func(x value.BV, w uint32) value.BV { return x.ZeroExtend(w) }, "zero_extend")
}

func signExtend(a, b value.Value, s smt.Solver) (value.Value, error) {
	return extendBy(a, b, s, func(x value.BV, w uint32) value.BV { return x.SignExtend(w) }, "sign_extend")
}

func extendBy(a, b value.Value, s smt.Solver, concrete func(value.BV, uint32) value.BV, name string) (value.Value, error) {
	ni, ok := toI128(b)
	if !ok || b.IsSymbolic() {
		return value.Value{}, typeErr("%s: target width must be a concrete integer", name)
	}
	newWidth := uint32(ni.Int64())
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		return value.BitsVal(concrete(bv, newWidth)), nil
	}
	oldWidth, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, oldWidth, s)
	if err != nil {
		return value.Value{}, err
	}
	op := "zero_extend"
	if name == "sign_extend" {
		op = "sign_extend"
	}
	delta := int64(newWidth) - int64(oldWidth)
	if delta < 0 {
		return value.Value{}, outOfBoundsErr("%s: target width %d narrower than source width %d", name, newWidth, oldWidth)
	}
	sym := s.DefineConst(smt.SortBV, newWidth, "((_ "+op+" "+widthStr(uint32(delta))+") %"+symStr(aSym)+")")
	return value.Symbolic(sym), nil
}

// opSlice extracts a length-wide field starting at a concrete or symbolic
// bit offset, per spec.md §8 scenario 3 (0xABCD, slice(4,8) -> 0xBC).
func opSlice(bits, start, length value.Value, s smt.Solver) (value.Value, error) {
	li, ok := toI128(length)
	if !ok || length.IsSymbolic() {
		return value.Value{}, typeErr("op_slice: length must be a concrete integer")
	}
	ln := uint32(li.Int64())
	bv, bok := bits.AsBits()
	si, sok := toI128(start)
	if bok && sok && isConcreteScalar(bits) && isConcreteScalar(start) {
		return value.BitsVal(bv.Slice(uint32(si.Int64()), ln)), nil
	}
	width, err := bvWidthOf(bits, s)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToBVSym(bits, width, s)
	if err != nil {
		return value.Value{}, err
	}
	startSym, err := liftToIntSym(start, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, ln, "((_ extract "+widthStr(ln)+" 0) (bvlshr %"+symStr(bSym)+" %"+symStr(startSym)+"))")
	return value.Symbolic(sym), nil
}

// subrangeBits extracts bits [high, low] inclusive, the Sail
// `vector_subrange`/`subrange_bits` primop.
func subrangeBits(a, high, low value.Value, s smt.Solver) (value.Value, error) {
	hi, hok := toI128(high)
	lo, lok := toI128(low)
	if !hok || !lok || high.IsSymbolic() || low.IsSymbolic() {
		return value.Value{}, typeErr("subrange_bits: bounds must be concrete integers")
	}
	h, l := uint32(hi.Int64()), uint32(lo.Int64())
	if h < l {
		return value.Value{}, outOfBoundsErr("subrange_bits: high %d < low %d", h, l)
	}
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		return value.BitsVal(bv.Extract(h, l)), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, h-l+1, "((_ extract "+widthStr(h)+" "+widthStr(l)+") %"+symStr(aSym)+")")
	return value.Symbolic(sym), nil
}

// setSliceBang overwrites a bit range of a with update at a concrete or
// symbolic start offset (spec.md §4.1's masked-write primop).
func setSliceBang(a, start, update value.Value, s smt.Solver) (value.Value, error) {
	abv, aok := a.AsBits()
	ubv, uok := update.AsBits()
	si, sok := toI128(start)
	if aok && uok && sok && isConcreteScalar(a) && isConcreteScalar(update) && isConcreteScalar(start) {
		return value.BitsVal(abv.SetSlice(uint32(si.Int64()), ubv)), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	uWidth, err := bvWidthOf(update, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	uSym, err := liftToBVSym(update, uWidth, s)
	if err != nil {
		return value.Value{}, err
	}
	startSym, err := liftToIntSym(start, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, width, "(set_slice %"+symStr(aSym)+" %"+symStr(startSym)+" %"+symStr(uSym)+")")
	return value.Symbolic(sym), nil
}

// getSliceInt extracts a length-wide bit-vector from an integer value at a
// concrete bit offset (Sail's get_slice_int).
func getSliceInt(length, n, start value.Value, s smt.Solver) (value.Value, error) {
	li, ok := toI128(length)
	if !ok || length.IsSymbolic() {
		return value.Value{}, typeErr("get_slice_int: length must be a concrete integer")
	}
	ln := uint32(li.Int64())
	ni, nok := toI128(n)
	si, sok := toI128(start)
	if nok && sok && isConcreteScalar(n) && isConcreteScalar(start) {
		full := ni.ToBV()
		return value.BitsVal(full.Slice(uint32(si.Int64()), ln)), nil
	}
	nSym, err := liftToIntSym(n, s)
	if err != nil {
		return value.Value{}, err
	}
	startSym, err := liftToIntSym(start, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, ln, "((_ extract "+widthStr(ln)+" 0) (bvlshr ((_ int2bv "+widthStr(value.MaxWidth)+") %"+symStr(nSym)+") %"+symStr(startSym)+"))")
	return value.Symbolic(sym), nil
}

func appendBits(a, b value.Value, s smt.Solver) (value.Value, error) {
	abv, aok := a.AsBits()
	bbv, bok := b.AsBits()
	if aok && bok && isConcreteScalar(a) && isConcreteScalar(b) {
		return value.BitsVal(abv.Append(bbv)), nil
	}
	aWidth, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	bWidth, err := bvWidthOf(b, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, aWidth, s)
	if err != nil {
		return value.Value{}, err
	}
	bSym, err := liftToBVSym(b, bWidth, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, aWidth+bWidth, "(concat %"+symStr(aSym)+" %"+symStr(bSym)+")")
	return value.Symbolic(sym), nil
}

func shiftl(a, n value.Value, s smt.Solver) (value.Value, error) {
	return shiftBy(a, n, s, func(x value.BV, k uint) value.BV { return x.Shl(k) }, "bvshl")
}

func shiftr(a, n value.Value, s smt.Solver) (value.Value, error) {
	return shiftBy(a, n, s, func(x value.BV, k uint) value.BV { return x.Lshr(k) }, "bvlshr")
}

func arithShiftr(a, n value.Value, s smt.Solver) (value.Value, error) {
	return shiftBy(a, n, s, func(x value.BV, k uint) value.BV { return x.Ashr(k) }, "bvashr")
}

func shiftBy(a, n value.Value, s smt.Solver, concrete func(value.BV, uint) value.BV, smtOp string) (value.Value, error) {
	ni, ok := toI128(n)
	if bv, bok := a.AsBits(); bok && ok && isConcreteScalar(a) && isConcreteScalar(n) {
		return value.BitsVal(concrete(bv, uint(ni.Int64()))), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	nSym, err := liftToIntSym(n, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, width, "("+smtOp+" %"+symStr(aSym)+" ((_ int2bv "+widthStr(width)+") %"+symStr(nSym)+"))")
	return value.Symbolic(sym), nil
}

func replicateBits(a, k value.Value, s smt.Solver) (value.Value, error) {
	ki, ok := toI128(k)
	if !ok || k.IsSymbolic() {
		return value.Value{}, typeErr("replicate_bits: count must be a concrete integer")
	}
	n := uint32(ki.Int64())
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		return value.BitsVal(bv.Replicate(n)), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortBV, width*n, "((_ repeat "+widthStr(n)+") %"+symStr(aSym)+")")
	return value.Symbolic(sym), nil
}

// alignBits rounds a down to the nearest multiple of alignment k (a
// value, not a bit-exponent): align_bits(0x1234, 16) = 0x1230. Grounded
// on the original's align_bits (primop.rs): a symbolic bitvector narrow
// enough for one bvand, aligned to a power-of-two boundary, masks the
// low bits directly; everything else (concrete bitvectors, and any
// non-power-of-two alignment) goes through the general
// k * (unsigned(a) / k) formula, re-sliced to a width-bit bitvector.
func alignBits(a, k value.Value, s smt.Solver) (value.Value, error) {
	ki, kok := toI128(k)
	if !kok || k.IsSymbolic() {
		return value.Value{}, typeErr("align_bits: alignment must be a concrete integer")
	}
	if ki.Sign() <= 0 {
		return value.Value{}, typeErr("align_bits: alignment must be positive")
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}

	if a.IsSymbolic() && width <= 64 && isPowerOfTwo(ki) {
		maskLow := new(big.Int).Sub(ki.BigInt(), big.NewInt(1))
		maskBV := value.FromBigInt(width, maskLow).Not()
		aSym, err := liftToBVSym(a, width, s)
		if err != nil {
			return value.Value{}, err
		}
		sym := s.DefineConst(smt.SortBV, width, fmt.Sprintf("(bvand %%%d (_ bv%s %d))", aSym, maskBV.Unsigned().String(), width))
		return value.Symbolic(sym), nil
	}

	x, err := sailUnsigned(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	quotient, err := tdivInt(x, value.I128Val(ki), s)
	if err != nil {
		return value.Value{}, err
	}
	alignedX, err := mulInt(value.I128Val(ki), quotient, s)
	if err != nil {
		return value.Value{}, err
	}
	return getSliceInt(value.I128Val(value.I128FromInt64(int64(width))), alignedX, value.I128Val(value.I128Zero), s)
}

// countLeadingZeros uses the native math/bits fast path for concrete
// values that fit a 64-bit word, and BV.LeadingZeros otherwise. A
// symbolic operand becomes one opaque count_leading_zeros term over the
// lifted bit-vector; no divide-and-conquer bit-vector encoding of the
// count is built.
func countLeadingZeros(a value.Value, s smt.Solver) (value.Value, error) {
	if bv, ok := a.AsBits(); ok && isConcreteScalar(a) {
		if bv.Width() <= 64 {
			return value.I64(int64(value.LeadingZerosNative64(bv.Unsigned().Uint64(), bv.Width()))), nil
		}
		return value.I64(int64(bv.LeadingZeros())), nil
	}
	width, err := bvWidthOf(a, s)
	if err != nil {
		return value.Value{}, err
	}
	aSym, err := liftToBVSym(a, width, s)
	if err != nil {
		return value.Value{}, err
	}
	sym := s.DefineConst(smt.SortInt, 0, "(count_leading_zeros %"+symStr(aSym)+")")
	return value.Symbolic(sym), nil
}
