package litmus

import (
	"bytes"
	"context"
	"debug/elf"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oisee/isla-go/pkg/isa"
	"github.com/oisee/isla-go/pkg/tmpfile"
)

// ThreadCode is one thread's assembly source paired with the section
// name it will be assembled into, so assemble can recover each thread's
// bytes from the linked object afterward.
type ThreadCode struct {
	Name string // e.g. "0", "1", matching a litmus Thread's index
	Asm  string
}

// AssembledThread is one thread's machine code extracted from the
// linked ELF's litmus_<name> section.
type AssembledThread struct {
	Name  string
	Bytes []byte
}

// Assemble invokes cfg's assembler on every thread's code, piped to its
// stdin each under its own `litmus_<name>` section, then (when reloc is
// true) links the result against a generated linker script that places
// each thread's section at a distinct address, and finally extracts
// each thread's bytes back out of the linked ELF. Grounded directly on
// the original implementation's assemble(): a single assembler
// invocation fed every thread's code over stdin, followed by a linker
// pass and an ELF section scrape.
func Assemble(ctx context.Context, threads []ThreadCode, reloc bool, cfg *isa.Config, tf *tmpfile.Factory) ([]AssembledThread, error) {
	objfile, err := tf.Create(".o")
	if err != nil {
		return nil, fmt.Errorf("litmus: allocate object file: %w", err)
	}
	objPath := objfile.Path
	objfile.Close()

	var stdin bytes.Buffer
	for _, th := range threads {
		fmt.Fprintf(&stdin, "\t.section litmus_%s\n", th.Name)
		stdin.WriteString(th.Asm)
		if !strings.HasSuffix(th.Asm, "\n") {
			stdin.WriteString("\n")
		}
	}

	asmCmd := exec.CommandContext(ctx, cfg.Toolchain.Assembler, "-o", objPath)
	asmCmd.Stdin = &stdin
	var asmErr bytes.Buffer
	asmCmd.Stderr = &asmErr
	if err := asmCmd.Run(); err != nil {
		return nil, fmt.Errorf("litmus: assembler %s failed: %w: %s", cfg.Toolchain.Assembler, err, asmErr.String())
	}

	finalPath := objPath
	if reloc {
		linkerScript, err := tf.Create(".ld")
		if err != nil {
			return nil, fmt.Errorf("litmus: allocate linker script: %w", err)
		}
		script := GenerateLinkerScript(threads, cfg)
		if _, err := linkerScript.WriteString(script); err != nil {
			linkerScript.Close()
			return nil, fmt.Errorf("litmus: write linker script: %w", err)
		}
		linkerScriptPath := linkerScript.Path
		// Close only the handle: tmpfile's Close would also unlink the
		// script before the linker reads it.
		linkerScript.File.Close()

		relocPath, err := tf.Path(".reloc")
		if err != nil {
			return nil, fmt.Errorf("litmus: allocate linked object path: %w", err)
		}

		linkCmd := exec.CommandContext(ctx, cfg.Toolchain.Linker,
			"-T", linkerScriptPath, "-o", relocPath, objPath)
		var linkErr bytes.Buffer
		linkCmd.Stderr = &linkErr
		if err := linkCmd.Run(); err != nil {
			return nil, fmt.Errorf("litmus: linker %s failed: %w: %s", cfg.Toolchain.Linker, err, linkErr.String())
		}
		finalPath = relocPath
		defer os.Remove(linkerScriptPath)
	}
	defer os.Remove(finalPath)
	defer os.Remove(objPath)

	return ExtractThreadSections(finalPath, threads)
}

// AssembleInstruction assembles a single instruction with no linker
// pass, the front end's entry point for building one-off instruction
// encodings rather than full litmus runs (the islaeval assemble
// subcommand calls it).
func AssembleInstruction(ctx context.Context, instr string, cfg *isa.Config, tf *tmpfile.Factory) ([]byte, error) {
	out, err := Assemble(ctx, []ThreadCode{{Name: "single", Asm: instr + "\n"}}, false, cfg, tf)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("litmus: failed to assemble instruction %q", instr)
	}
	return out[0].Bytes, nil
}

// GenerateLinkerScript builds a linker script placing each thread's
// litmus_<name> section at cfg.ThreadBase + i*cfg.ThreadStride, in
// thread order.
func GenerateLinkerScript(threads []ThreadCode, cfg *isa.Config) string {
	addr := uint64(cfg.ThreadBase)
	stride := uint64(cfg.ThreadStride)
	if stride == 0 {
		stride = 0x1000
	}
	var b strings.Builder
	b.WriteString("start = 0;\nSECTIONS\n{\n")
	for _, th := range threads {
		fmt.Fprintf(&b, "  . = 0x%x;\n  litmus_%s : { *(litmus_%s) }\n", addr, th.Name, th.Name)
		addr += stride
	}
	b.WriteString("}\n")
	return b.String()
}

// ExtractThreadSections reads the ELF at path and returns each thread's
// bytes from its litmus_<name> section.
func ExtractThreadSections(path string, threads []ThreadCode) ([]AssembledThread, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("litmus: parse generated ELF: %w", err)
	}
	defer f.Close()

	out := make([]AssembledThread, 0, len(threads))
	for _, th := range threads {
		sectionName := "litmus_" + th.Name
		sec := f.Section(sectionName)
		if sec == nil {
			return nil, fmt.Errorf("litmus: section %s not found in generated ELF", sectionName)
		}
		data, err := sec.Data()
		if err != nil {
			return nil, fmt.Errorf("litmus: read section %s: %w", sectionName, err)
		}
		out = append(out, AssembledThread{Name: th.Name, Bytes: data})
	}
	if len(out) != len(threads) {
		return nil, fmt.Errorf("litmus: could not find all threads in generated ELF")
	}
	return out, nil
}
