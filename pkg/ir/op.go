package ir

// Op enumerates the built-in Exp operators (spec.md §3 "Operator Op").
type Op uint8

const (
	OpNot Op = iota
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpLt
	OpLteq
	OpGt
	OpGteq
	OpSlice
	OpSignExtend
	OpZeroExtend
	OpConcat
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpBitwiseNot
	OpBitToBool
)

func (o Op) String() string {
	switch o {
	case OpNot:
		return "not"
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpLt:
		return "lt"
	case OpLteq:
		return "lteq"
	case OpGt:
		return "gt"
	case OpGteq:
		return "gteq"
	case OpSlice:
		return "slice"
	case OpSignExtend:
		return "sign_extend"
	case OpZeroExtend:
		return "zero_extend"
	case OpConcat:
		return "concat"
	case OpBitwiseAnd:
		return "bitwise_and"
	case OpBitwiseOr:
		return "bitwise_or"
	case OpBitwiseXor:
		return "bitwise_xor"
	case OpBitwiseNot:
		return "bitwise_not"
	case OpBitToBool:
		return "bit_to_bool"
	default:
		return "?op"
	}
}
