package primop

import (
	"strconv"

	"github.com/oisee/isla-go/pkg/value"
)

// symStr and widthStr format symbol handles and widths for the termDesc
// strings passed to smt.Solver.DefineConst. The real backend parses its
// own term language; this facade only needs a stable, debuggable
// description (spec.md §1 "solver integration is out of scope").
func symStr(s value.Sym) string { return strconv.FormatUint(uint64(s), 10) }

func widthStr(w uint32) string { return strconv.FormatUint(uint64(w), 10) }
