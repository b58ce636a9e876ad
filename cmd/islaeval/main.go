package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/oisee/isla-go/pkg/isa"
	"github.com/oisee/isla-go/pkg/litmus"
	"github.com/oisee/isla-go/pkg/obslog"
	"github.com/oisee/isla-go/pkg/primop"
	"github.com/oisee/isla-go/pkg/tmpfile"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "islaeval",
		Short: "Symbolic ISA evaluator core — litmus front end and primop registry",
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// config command
	var configFile string

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Parse and summarize an ISA TOML configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := obslog.Must(verbose)
			defer log.Sync()

			cfg, err := loadISAConfig(configFile)
			if err != nil {
				return err
			}
			log.Infow("loaded ISA config", "pc", cfg.PC, "ifetch", cfg.IFetch, "hash", cfg.Hash)

			fmt.Printf("pc=%s ifetch=%s hash=%s\n", cfg.PC, cfg.IFetch, cfg.Hash)
			fmt.Printf("toolchain: as=%s ld=%s objdump=%s\n", cfg.Toolchain.Assembler, cfg.Toolchain.Linker, cfg.Toolchain.Objdump)
			fmt.Printf("registers: %d  reads: %d  writes: %d  cache_ops: %d  barriers: %d\n",
				len(cfg.Registers), len(cfg.Reads), len(cfg.Writes), len(cfg.CacheOps), len(cfg.Barriers))
			if cfg.MMU.Enabled {
				fmt.Printf("mmu: granule=%d levels=%d\n", cfg.MMU.Granule, cfg.MMU.Levels)
			}
			return nil
		},
	}
	configCmd.Flags().StringVar(&configFile, "isa", "", "Path to ISA TOML config (empty = built-in default)")

	// assemble command
	var asmISAFile string

	assembleCmd := &cobra.Command{
		Use:   "assemble [instruction]",
		Short: "Assemble a single instruction and print its encoded bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadISAConfig(asmISAFile)
			if err != nil {
				return err
			}
			instr := strings.Join(args, " ")
			tf := tmpfile.New()
			bytes, err := litmus.AssembleInstruction(context.Background(), instr, cfg, tf)
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}
			fmt.Printf("%s => % x (%d bytes)\n", instr, bytes, len(bytes))
			return nil
		},
	}
	assembleCmd.Flags().StringVar(&asmISAFile, "isa", "", "Path to ISA TOML config (empty = built-in default)")

	// litmus command
	var litISAFile string
	var doAssemble bool

	litmusCmd := &cobra.Command{
		Use:   "litmus [litmus.toml]",
		Short: "Parse a litmus test record, optionally assembling/linking its threads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := obslog.Must(verbose)
			defer log.Sync()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read litmus file: %w", err)
			}
			rec, err := litmus.Parse(data)
			if err != nil {
				return fmt.Errorf("parse litmus file: %w", err)
			}
			fmt.Printf("%s: %d thread(s), %d symbolic address(es)\n", rec.Name, len(rec.Threads), len(rec.SymbolicAddrs))
			fmt.Printf("final: %s\n", describeProp(rec.Final))

			cfg, err := loadISAConfig(litISAFile)
			if err != nil {
				return err
			}
			addrs := litmus.AssignAddresses(rec, uint64(cfg.SymbolicAddrBase), uint64(cfg.SymbolicAddrStride))
			for i, th := range rec.Threads {
				init, err := litmus.ResolveInit(th, cfg, addrs)
				if err != nil {
					return fmt.Errorf("resolve thread %d init: %w", i, err)
				}
				for _, ri := range init {
					log.Infow("thread register init", "thread", i, "register", ri.Register, "address", fmt.Sprintf("%#x", ri.Address))
				}
			}

			if !doAssemble {
				return nil
			}
			threads := make([]litmus.ThreadCode, len(rec.Threads))
			for i, th := range rec.Threads {
				threads[i] = litmus.ThreadCode{Name: fmt.Sprintf("%d", i), Asm: th.Assembly}
			}
			tf := tmpfile.New()
			assembled, err := litmus.Assemble(context.Background(), threads, true, cfg, tf)
			if err != nil {
				return fmt.Errorf("assemble litmus threads: %w", err)
			}
			for _, a := range assembled {
				log.Infow("assembled thread", "name", a.Name, "bytes", len(a.Bytes))
				fmt.Printf("  thread %s: %d bytes\n", a.Name, len(a.Bytes))
			}
			return nil
		},
	}
	litmusCmd.Flags().StringVar(&litISAFile, "isa", "", "Path to ISA TOML config (empty = built-in default)")
	litmusCmd.Flags().BoolVar(&doAssemble, "assemble", false, "Also assemble and link each thread")

	// primops command
	primopsCmd := &cobra.Command{
		Use:   "primops",
		Short: "List every registered primop name",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := primop.NewRegistry()
			names := make([]string, 0, len(reg.Unary)+len(reg.Binary)+len(reg.Variadic))
			for name := range reg.Unary {
				names = append(names, name+" (unary)")
			}
			for name := range reg.Binary {
				names = append(names, name+" (binary)")
			}
			for name := range reg.Variadic {
				names = append(names, name+" (variadic)")
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(configCmd, assembleCmd, litmusCmd, primopsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadISAConfig(path string) (*isa.Config, error) {
	if path == "" {
		return isa.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ISA config: %w", err)
	}
	return isa.Parse(data)
}

func describeProp(p *litmus.Prop) string {
	if p == nil {
		return "<none>"
	}
	switch p.Kind {
	case litmus.PropEqual:
		return fmt.Sprintf("%s = %s", p.Loc, p.Value)
	case litmus.PropNot:
		return "not " + describeProp(p.Child)
	case litmus.PropAnd:
		return joinProps(p.Children, "and")
	case litmus.PropOr:
		return joinProps(p.Children, "or")
	case litmus.PropImplies:
		return fmt.Sprintf("(%s => %s)", describeProp(p.Left), describeProp(p.Right))
	default:
		return "<?>"
	}
}

func joinProps(children []*litmus.Prop, op string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = describeProp(c)
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}
