// Package isa parses the declarative TOML configuration that tells the
// litmus front end how to talk to one instruction set: which register
// names exist, how the assembler/linker/objdump toolchain is invoked,
// and which primops back the architecture's reads/writes/cache
// maintenance/barriers.
package isa

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// HexOrDecimal parses either "0x1000" or "4096" into a uint64. Config
// uses it for the thread and symbolic-address base/stride fields only;
// register widths, memory-op widths and the MMU granule are plain TOML
// integers and do not accept the "0x" string form.
type HexOrDecimal uint64

func (h *HexOrDecimal) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return fmt.Errorf("isa: invalid integer %q: %w", string(text), err)
	}
	*h = HexOrDecimal(v)
	return nil
}

// Toolchain names the external assembler/linker/objdump binaries used
// to build a litmus test (spec.md §4.4's sandboxed external collaborator
// trio).
type Toolchain struct {
	Assembler string `toml:"assembler"`
	Linker    string `toml:"linker"`
	Objdump   string `toml:"objdump"`
}

// MemoryOp names the primop that backs one architectural operation kind
// (a plain read, an exclusive write, a cache-maintenance instruction...).
type MemoryOp struct {
	Primop string `toml:"primop"`
	Width  int    `toml:"width,omitempty"`
}

// Barrier names a fence/barrier instruction mnemonic and the barrier
// kind string passed to the `barrier` primop.
type Barrier struct {
	Mnemonic string `toml:"mnemonic"`
	Kind     string `toml:"kind"`
}

// MMU carries the address-translation knobs a litmus run needs: whether
// translation is modeled at all, and the granule/levels if so.
type MMU struct {
	Enabled bool `toml:"enabled"`
	Granule int  `toml:"granule,omitempty"`
	Levels  int  `toml:"levels,omitempty"`
}

// Threads bounds how many hardware threads a litmus test may use.
type Threads struct {
	Max int `toml:"max"`
}

// Register describes one named architectural register: its bit width
// and, for sub-registers (e.g. w0 aliasing x0), the parent it overlaps.
type Register struct {
	Width  int    `toml:"width"`
	Parent string `toml:"parent,omitempty"`
}

// Config is the full parsed ISA description.
type Config struct {
	PC             string              `toml:"pc"`
	IFetch         string              `toml:"ifetch"`
	ReadExclusives []string            `toml:"read_exclusives"`
	WriteExclusives []string           `toml:"write_exclusives"`
	Toolchain      Toolchain           `toml:"toolchain"`
	Reads          map[string]MemoryOp `toml:"reads"`
	Writes         map[string]MemoryOp `toml:"writes"`
	CacheOps       map[string]MemoryOp `toml:"cache_ops"`
	Barriers       []Barrier           `toml:"barriers"`
	MMU            MMU                 `toml:"mmu"`
	Threads        Threads             `toml:"threads"`
	SymbolicAddrs  []string            `toml:"symbolic_addrs"`
	Registers      map[string]Register `toml:"registers"`

	// RegisterRenames maps a register name as it appears in a litmus
	// test's thread init/final assertion to the canonical name this
	// config declares under [registers] (spec.md §4.4 step 2's
	// "map register through ISAConfig.register_renames").
	RegisterRenames map[string]string `toml:"register_renames"`

	// ThreadBase and ThreadStride place each litmus thread's code
	// section in the linker script assemble.go generates: thread N
	// loads at ThreadBase + N*ThreadStride.
	ThreadBase   HexOrDecimal `toml:"thread_base"`
	ThreadStride HexOrDecimal `toml:"thread_stride"`

	// SymbolicAddrBase and SymbolicAddrStride lay out a litmus test's
	// `symbolic = [names...]` list (spec.md §4.4 step 1): name i is
	// assigned SymbolicAddrBase + i*SymbolicAddrStride.
	SymbolicAddrBase   HexOrDecimal `toml:"symbolic_addr_base"`
	SymbolicAddrStride HexOrDecimal `toml:"symbolic_addr_stride"`

	// Hash is computed by Parse over the raw file bytes, not decoded
	// from TOML; it is the provenance fingerprint a litmus run records
	// alongside its results so a replay can detect a changed ISA config.
	Hash string `toml:"-"`
}

// Default returns a minimal built-in configuration (a generic 64-bit
// load/store architecture with no exclusives, no MMU), used when no ISA
// config file is supplied. Litmus tests that only exercise add_int-style
// primops against registers need nothing more specific than this.
func Default() *Config {
	return &Config{
		PC:     "pc",
		IFetch: "ifetch",
		Toolchain: Toolchain{
			Assembler: "as",
			Linker:    "ld",
			Objdump:   "objdump",
		},
		Reads:        map[string]MemoryOp{"ld": {Primop: "read_mem"}},
		Writes:       map[string]MemoryOp{"st": {Primop: "write_mem"}},
		Threads:      Threads{Max: 4},
		ThreadBase:         0x1000,
		ThreadStride:       0x1000,
		SymbolicAddrBase:   0x100000,
		SymbolicAddrStride: 8,
		Registers: map[string]Register{
			"x0": {Width: 64},
			"x1": {Width: 64},
		},
	}
}

// Parse decodes an ISA TOML config from raw bytes and computes its
// provenance hash.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("isa: parse config: %w", err)
	}
	if cfg.PC == "" {
		return nil, fmt.Errorf("isa: config missing required field 'pc'")
	}
	if cfg.IFetch == "" {
		return nil, fmt.Errorf("isa: config missing required field 'ifetch'")
	}
	sum := sha256.Sum256(data)
	cfg.Hash = hex.EncodeToString(sum[:])
	return &cfg, nil
}

// IsExclusiveRead reports whether mnemonic is one of the configured
// exclusive-read opcodes (e.g. ARM's ldxr).
func (c *Config) IsExclusiveRead(mnemonic string) bool {
	for _, m := range c.ReadExclusives {
		if m == mnemonic {
			return true
		}
	}
	return false
}

// IsExclusiveWrite reports whether mnemonic is one of the configured
// exclusive-write opcodes (e.g. ARM's stxr).
func (c *Config) IsExclusiveWrite(mnemonic string) bool {
	for _, m := range c.WriteExclusives {
		if m == mnemonic {
			return true
		}
	}
	return false
}

// BarrierKind returns the barrier kind string for mnemonic, if
// configured.
func (c *Config) BarrierKind(mnemonic string) (string, bool) {
	for _, b := range c.Barriers {
		if b.Mnemonic == mnemonic {
			return b.Kind, true
		}
	}
	return "", false
}

// ResolveRegister maps name through RegisterRenames, falling back to
// name unchanged if no rename applies (spec.md §4.4 step 2's
// register_renames lookup; the symbol-table fallback the original
// applies after a miss has no equivalent here since this front end
// names registers directly rather than through a symbol table).
func (c *Config) ResolveRegister(name string) string {
	if renamed, ok := c.RegisterRenames[name]; ok {
		return renamed
	}
	return name
}

// RegisterWidth resolves a register's bit width, following Parent links
// for sub-registers that declare no width of their own.
func (c *Config) RegisterWidth(name string) (int, bool) {
	r, ok := c.Registers[name]
	if !ok {
		return 0, false
	}
	if r.Width != 0 {
		return r.Width, true
	}
	if r.Parent != "" {
		return c.RegisterWidth(r.Parent)
	}
	return 0, false
}
