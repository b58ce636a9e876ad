package litmus

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/oisee/isla-go/pkg/isa"
)

// rawRecord mirrors the litmus TOML file's on-disk shape; Parse
// converts it into the richer Record (Final parsed into a Prop tree).
type rawRecord struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Arch        string            `toml:"arch"`
	Threads     []rawThread       `toml:"thread"`
	Final       string            `toml:"final"`
	Addrs       []string          `toml:"symbolic_addrs"`
}

type rawThread struct {
	Assembly string            `toml:"assembly"`
	Rename   map[string]string `toml:"rename"`
	Init     map[string]string `toml:"init"`
}

// Parse decodes a litmus TOML file's raw bytes into a Record, including
// parsing its `final` field into a Prop tree.
func Parse(data []byte) (*Record, error) {
	var raw rawRecord
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("litmus: parse record: %w", err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("litmus: record missing required field 'name'")
	}
	if len(raw.Threads) == 0 {
		return nil, fmt.Errorf("litmus: record %q declares no threads", raw.Name)
	}
	if raw.Final == "" {
		return nil, fmt.Errorf("litmus: record %q missing required field 'final'", raw.Name)
	}
	final, err := ParseFinal(raw.Final)
	if err != nil {
		return nil, fmt.Errorf("litmus: record %q: %w", raw.Name, err)
	}
	threads := make([]Thread, len(raw.Threads))
	for i, rt := range raw.Threads {
		if rt.Assembly == "" {
			return nil, fmt.Errorf("litmus: record %q thread %d has empty assembly", raw.Name, i)
		}
		threads[i] = Thread{Assembly: rt.Assembly, Renames: rt.Rename, InitNames: rt.Init}
	}
	return &Record{
		Name:          raw.Name,
		Description:   raw.Description,
		Arch:          raw.Arch,
		Threads:       threads,
		Final:         final,
		SymbolicAddrs: raw.Addrs,
	}, nil
}

// AddressAssignment maps a litmus test's symbolic address names to
// concrete addresses chosen for one run. A fresh assignment is computed
// per execution path since different threads may observe aliasing
// differently under a weak memory model (out of scope here — this
// front end hands the concrete assignment to the executor, which is
// responsible for exploring aliasing choices).
type AddressAssignment map[string]uint64

// AssignAddresses lays out rec's symbolic addresses in declaration order
// at base + i*stride, for whatever stride is given. Deterministic and
// stable across calls for the same Record so repeated runs are
// reproducible.
func AssignAddresses(rec *Record, base uint64, stride uint64) AddressAssignment {
	out := make(AddressAssignment, len(rec.SymbolicAddrs))
	addr := base
	for _, name := range rec.SymbolicAddrs {
		out[name] = addr
		addr += stride
	}
	return out
}

// ResolveRenames applies a thread's register-rename table to a register
// name used in the final assertion's Loc (e.g. an abstract "p" used in
// assembly renamed to "x0" for thread 0). Returns the input unchanged if
// no rename applies.
func ResolveRenames(th Thread, register string) string {
	if th.Renames == nil {
		return register
	}
	if renamed, ok := th.Renames[register]; ok {
		return renamed
	}
	return register
}

// ResolveInit turns a thread's raw `init` table (register name -> value
// name) into resolved (register, address) pairs, per spec.md §4.4 step
// 2: map each register through cfg.RegisterRenames, then look up its
// value name in addrs (the symbolic address assignment). Grounded on
// the original's parse_init/parse_thread_inits (litmus.rs): an
// unresolvable value name is an error here rather than the original's
// panic, matching this front end's explicit-error style throughout.
// Entries are returned sorted by register name for deterministic output.
func ResolveInit(th Thread, cfg *isa.Config, addrs AddressAssignment) ([]RegisterInit, error) {
	if len(th.InitNames) == 0 {
		return nil, nil
	}
	regs := make([]string, 0, len(th.InitNames))
	for reg := range th.InitNames {
		regs = append(regs, reg)
	}
	sort.Strings(regs)

	out := make([]RegisterInit, 0, len(regs))
	for _, reg := range regs {
		valueName := th.InitNames[reg]
		addr, ok := addrs[valueName]
		if !ok {
			return nil, fmt.Errorf("litmus: thread init %q: no symbolic address named %q", reg, valueName)
		}
		out = append(out, RegisterInit{Register: cfg.ResolveRegister(reg), Address: addr})
	}
	return out, nil
}
