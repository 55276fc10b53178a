package report

import (
	"sync"

	"github.com/pterm/pterm"
)

// LogLevel mirrors the teacher's verbosity levels (chai's cmd/args.go
// --loglevel option): silent, error, warn, verbose.
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

var (
	mu       sync.Mutex
	logLevel = LogLevelVerbose
)

// SetLogLevel configures the process-wide display verbosity. Like the
// syntactic-dispatcher registry, this is the only other process-wide
// mutable state in the compiler, and it is expected to be set once at
// startup by the CLI.
func SetLogLevel(lvl LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	logLevel = lvl
}

// DisplayError prints a CompileError using pterm's structured error
// styling.
func DisplayError(err *CompileError) {
	mu.Lock()
	defer mu.Unlock()
	if logLevel < LogLevelError {
		return
	}
	pterm.Error.Printfln("%s: %s", err.Pos, err.Message)
}

// DisplayWarning prints a non-fatal diagnostic.
func DisplayWarning(pos Position, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if logLevel < LogLevelWarn {
		return
	}
	pterm.Warning.Printfln(format+" (%s)", append(args, pos)...)
}

// DisplayInfo prints an informational message (compilation phase
// transitions, the "build finished" banner, ...).
func DisplayInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if logLevel < LogLevelVerbose {
		return
	}
	pterm.Info.Printfln(format, args...)
}

// DisplaySummary prints the final per-module error summary once
// compilation of every function has been attempted.
func DisplaySummary(agg *Aggregator) {
	mu.Lock()
	defer mu.Unlock()
	if logLevel < LogLevelError {
		return
	}
	errs := agg.AllErrors()
	if len(errs) == 0 {
		pterm.Success.Println("compilation finished with no errors")
		return
	}
	pterm.Error.Printfln("compilation failed with %d error(s) across %d function(s)", len(errs), len(agg.Results))
	for _, r := range agg.Results {
		if !r.Failed() {
			continue
		}
		pterm.Println(pterm.LightRed("  " + r.Name + ":"))
		for _, e := range r.Errors {
			pterm.Println("    " + e.Error())
		}
	}
}
