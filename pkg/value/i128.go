package value

import (
	"fmt"
	"math/big"
)

// I128 is a 128-bit two's-complement machine integer, represented as
// (high, low) 64-bit words. All declared operations are total; wraparound
// is wrapping (two's-complement) semantics, matching spec.md §4.1.
type I128 struct {
	Hi uint64
	Lo uint64
}

// I128FromInt64 sign-extends a 64-bit integer into I128.
func I128FromInt64(x int64) I128 {
	var hi uint64
	if x < 0 {
		hi = ^uint64(0)
	}
	return I128{Hi: hi, Lo: uint64(x)}
}

// I128Zero is the additive identity.
var I128Zero = I128{}

// BigInt exposes a's value as a signed big.Int, for callers (e.g. the
// primop layer's align_bits) that need arithmetic big.Int doesn't
// otherwise provide a 128-bit-safe way to do inline.
func (a I128) BigInt() *big.Int { return a.big() }

// I128FromBigInt wraps an arbitrary-precision integer into I128,
// reducing modulo 2**128 (two's-complement) like every other I128
// constructor.
func I128FromBigInt(b *big.Int) I128 { return i128FromBig(b) }

func (a I128) big() *big.Int {
	bi := new(big.Int).SetUint64(a.Hi)
	bi.Lsh(bi, 64)
	lo := new(big.Int).SetUint64(a.Lo)
	bi.Or(bi, lo)
	// Interpret as signed 128-bit.
	if a.Hi&(1<<63) != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		bi.Sub(bi, mod)
	}
	return bi
}

func i128FromBig(b *big.Int) I128 {
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	v := new(big.Int).Mod(b, mod)
	if v.Sign() < 0 {
		v.Add(v, mod)
	}
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return I128{Hi: hi.Uint64(), Lo: lo.Uint64()}
}

func (a I128) Add(b I128) I128 { return i128FromBig(new(big.Int).Add(a.big(), b.big())) }
func (a I128) Sub(b I128) I128 { return i128FromBig(new(big.Int).Sub(a.big(), b.big())) }
func (a I128) Mul(b I128) I128 { return i128FromBig(new(big.Int).Mul(a.big(), b.big())) }

// Div truncates toward zero (tdiv), matching Sail's div_int semantics.
func (a I128) Div(b I128) (I128, bool) {
	bb := b.big()
	if bb.Sign() == 0 {
		return I128{}, false
	}
	q := new(big.Int).Quo(a.big(), bb)
	return i128FromBig(q), true
}

// Mod truncates toward zero, matching Div's rounding.
func (a I128) Mod(b I128) (I128, bool) {
	bb := b.big()
	if bb.Sign() == 0 {
		return I128{}, false
	}
	r := new(big.Int).Rem(a.big(), bb)
	return i128FromBig(r), true
}

func (a I128) Neg() I128 { return i128FromBig(new(big.Int).Neg(a.big())) }

func (a I128) Abs() I128 {
	if a.Sign() < 0 {
		return a.Neg()
	}
	return a
}

func (a I128) Sign() int { return a.big().Sign() }

func (a I128) Cmp(b I128) int { return a.big().Cmp(b.big()) }

func (a I128) Min(b I128) I128 {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func (a I128) Max(b I128) I128 {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// SubNat is subtraction saturated at zero (natural-number subtraction).
func (a I128) SubNat(b I128) I128 {
	r := a.Sub(b)
	if r.Sign() < 0 {
		return I128Zero
	}
	return r
}

// Pow2 computes 1 << x for x >= 0.
func Pow2(x I128) (I128, error) {
	if x.Sign() < 0 {
		return I128{}, fmt.Errorf("pow2: negative exponent")
	}
	one := big.NewInt(1)
	return i128FromBig(new(big.Int).Lsh(one, uint(x.Lo))), nil
}

// PowInt computes x**y; only defined for y >= 0 (concrete-only per spec.md).
func (a I128) PowInt(y I128) (I128, error) {
	if y.Sign() < 0 {
		return I128{}, fmt.Errorf("pow_int: negative exponent overflows")
	}
	return i128FromBig(new(big.Int).Exp(a.big(), y.big(), nil)), nil
}

func (a I128) Int64() int64 { return int64(a.Lo) }

func (a I128) String() string { return a.big().String() }

func (a I128) Equal(b I128) bool { return a.Hi == b.Hi && a.Lo == b.Lo }

// ToBV reinterprets a as a MaxWidth-wide bit-vector (two's-complement),
// used by primops that read an integer through a bit-vector slicing
// operation (e.g. get_slice_int).
func (a I128) ToBV() BV { return FromBigInt(MaxWidth, a.big()) }
