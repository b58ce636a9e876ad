// Package obslog provides the process-wide structured logger used by
// the islaeval CLI to report the loaded ISA config, each litmus thread's
// resolved register initializations and each assembled thread's size.
// Wraps go.uber.org/zap, grounded on wippyai-wasm-runtime's direct zap
// dependency (a sibling "runtime for a low-level bytecode" domain).
package obslog

import (
	"os"

	"go.uber.org/zap"
)

// New builds a SugaredLogger configured for CLI use: human-readable
// console output on stderr, info level by default, debug when verbose
// is set.
func New(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "" // CLI runs are short-lived; timestamps add noise
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests and library
// callers that don't want CLI-style console output.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Must builds a verbose-aware logger or exits the process, mirroring
// the teacher's cmd/z80opt/main.go fail-fast style for unrecoverable
// startup errors.
func Must(verbose bool) *zap.SugaredLogger {
	logger, err := New(verbose)
	if err != nil {
		os.Stderr.WriteString("obslog: failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	return logger
}
