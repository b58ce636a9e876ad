package value

import (
	"fmt"
	"math/big"
	"math/bits"
)

// MaxWidth is the width of an I128's bit-vector view (I128.ToBV) and of
// the int2bv conversion in get_slice_int's symbolic path. spec.md §2
// names 64 or 128 as plausible choices; 128 holds a full I128. BV itself
// is backed by big.Int and computes at any width: no primop compares a
// width against MaxWidth or hands wider values to the SMT solver.
const MaxWidth = 128

// BV is a size-parameterized concrete bit-vector whose width is not
// capped by MaxWidth. All operations are total within the declared width.
type BV struct {
	width uint32
	bits  *big.Int // always held reduced modulo 2^width, non-negative
}

func mask(width uint32) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
}

func reduce(width uint32, v *big.Int) *big.Int {
	r := new(big.Int).And(v, mask(width))
	return r
}

// ZeroWidth constructs the all-zero bit-vector of the given width.
func ZeroWidth(width uint32) BV {
	return BV{width: width, bits: big.NewInt(0)}
}

// OnesWidth constructs the all-one bit-vector of the given width.
func OnesWidth(width uint32) BV {
	return BV{width: width, bits: mask(width)}
}

// FromUint64 constructs a BV of the given width from a concrete value,
// truncating/masking to width.
func FromUint64(width uint32, x uint64) BV {
	return BV{width: width, bits: reduce(width, new(big.Int).SetUint64(x))}
}

// FromBigInt constructs a BV of the given width, masking to width and
// treating negative input as two's-complement.
func FromBigInt(width uint32, x *big.Int) BV {
	return BV{width: width, bits: reduce(width, x)}
}

func (b BV) Width() uint32 { return b.width }

// Unsigned returns the unsigned interpretation, i.e. x mod 2^w.
func (b BV) Unsigned() *big.Int { return new(big.Int).Set(b.bits) }

// Signed returns the sign-extended interpretation.
func (b BV) Signed() *big.Int {
	if b.width == 0 {
		return big.NewInt(0)
	}
	v := new(big.Int).Set(b.bits)
	if v.Bit(int(b.width)-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(b.width)))
	}
	return v
}

func (b BV) String() string {
	return fmt.Sprintf("0x%s:%d", b.bits.Text(16), b.width)
}

func (a BV) Equal(bb BV) bool {
	return a.width == bb.width && a.bits.Cmp(bb.bits) == 0
}

func requireSameWidth(a, b BV, op string) {
	if a.width != b.width {
		panic(fmt.Sprintf("bv: %s requires equal widths, got %d and %d", op, a.width, b.width))
	}
}

func (a BV) And(b BV) BV {
	requireSameWidth(a, b, "and")
	return BV{width: a.width, bits: new(big.Int).And(a.bits, b.bits)}
}

func (a BV) Or(b BV) BV {
	requireSameWidth(a, b, "or")
	return BV{width: a.width, bits: new(big.Int).Or(a.bits, b.bits)}
}

func (a BV) Xor(b BV) BV {
	requireSameWidth(a, b, "xor")
	return BV{width: a.width, bits: new(big.Int).Xor(a.bits, b.bits)}
}

func (a BV) Not() BV {
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Not(a.bits))}
}

func (a BV) Add(b BV) BV {
	requireSameWidth(a, b, "add")
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Add(a.bits, b.bits))}
}

func (a BV) Sub(b BV) BV {
	requireSameWidth(a, b, "sub")
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Sub(a.bits, b.bits))}
}

// AddI128 adds a 128-bit integer to a bit-vector, truncated to a's width.
func (a BV) AddI128(n I128) BV {
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Add(a.bits, n.big()))}
}

func (a BV) SubI128(n I128) BV {
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Sub(a.bits, n.big()))}
}

// Shl shifts left logically by n bits, dropping bits above width.
func (a BV) Shl(n uint) BV {
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Lsh(a.bits, n))}
}

// Lshr shifts right logically.
func (a BV) Lshr(n uint) BV {
	return BV{width: a.width, bits: new(big.Int).Rsh(a.bits, n)}
}

// Ashr shifts right arithmetically (sign-extending).
func (a BV) Ashr(n uint) BV {
	s := a.Signed()
	return BV{width: a.width, bits: reduce(a.width, new(big.Int).Rsh(s, n))}
}

// Slice extracts bits [low, low+len) as a new len-wide BV (lowest bit = low).
func (a BV) Slice(low, length uint32) BV {
	shifted := new(big.Int).Rsh(a.bits, uint(low))
	return BV{width: length, bits: reduce(length, shifted)}
}

// Extract returns bits [low, high] inclusive (high-low+1 wide), matching
// the extract(high, low, bv) primitive of spec.md §4.1.
func (a BV) Extract(high, low uint32) BV {
	return a.Slice(low, high-low+1)
}

// Append concatenates a (high bits) with b (low bits).
func (a BV) Append(b BV) BV {
	total := a.width + b.width
	shifted := new(big.Int).Lsh(a.bits, uint(b.width))
	combined := new(big.Int).Or(shifted, b.bits)
	return BV{width: total, bits: reduce(total, combined)}
}

// SetSlice overwrites bits [n, n+len(update)) of a with update, per
// spec.md §4.1's masked-write formula:
//
//	(~(mask_lower(len,updatelen) << n)) & bv | (update << n)
func (a BV) SetSlice(n uint32, update BV) BV {
	if update.width == 0 {
		return a
	}
	lowMask := mask(update.width)
	shiftedMask := new(big.Int).Lsh(lowMask, uint(n))
	clearMask := new(big.Int).Not(shiftedMask)
	cleared := new(big.Int).And(a.bits, reduce(a.width, clearMask))
	shiftedUpdate := new(big.Int).Lsh(update.bits, uint(n))
	combined := new(big.Int).Or(cleared, shiftedUpdate)
	return BV{width: a.width, bits: reduce(a.width, combined)}
}

// Replicate concatenates k copies of a, right-associatively.
func (a BV) Replicate(k uint32) BV {
	if k == 0 {
		return BV{width: 0, bits: big.NewInt(0)}
	}
	result := a
	for i := uint32(1); i < k; i++ {
		result = result.Append(a)
	}
	return result
}

// ZeroExtend widens a to newWidth, zero-filling the high bits.
func (a BV) ZeroExtend(newWidth uint32) BV {
	return BV{width: newWidth, bits: reduce(newWidth, a.bits)}
}

// SignExtend widens a to newWidth, sign-filling the high bits.
func (a BV) SignExtend(newWidth uint32) BV {
	return BV{width: newWidth, bits: reduce(newWidth, a.Signed())}
}

// LeadingZeros returns the count of leading (most-significant) zero bits
// within the declared width, from big.Int's BitLen at every width.
// LeadingZerosNative64 is the math/bits variant for values that fit a
// machine word.
func (a BV) LeadingZeros() uint32 {
	if a.width == 0 {
		return 0
	}
	if a.bits.Sign() == 0 {
		return a.width
	}
	topBit := a.bits.BitLen() // position of highest set bit, 1-indexed
	return a.width - uint32(topBit)
}

// LeadingZerosNative64 is the native math/bits fast path for widths <= 64,
// used when BV is known to fit a machine word.
func LeadingZerosNative64(x uint64, width uint32) uint32 {
	if width == 64 {
		return uint32(bits.LeadingZeros64(x))
	}
	if x == 0 {
		return width
	}
	lz64 := bits.LeadingZeros64(x)
	return uint32(lz64) - (64 - width)
}
