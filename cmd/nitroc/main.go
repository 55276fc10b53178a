// Command nitroc is the nitro compiler's command-line entry point: it
// drives internal/depm's project loading, internal/typecheck, and
// internal/assembler/internal/linker to turn a nitro project directory
// into a `.wasm` artifact. It plays the role the teacher's cmd.Execute
// plays for chai's `build`/`version`/`mod` subcommands, replacing the
// teacher's bespoke `olive` argument parser with cobra (see DESIGN.md for
// why), since cobra is the CLI library the rest of the example pack
// converges on.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nitro/internal/report"
)

// version is the running compiler's own identity, printed by the
// `version` subcommand -- distinct from depm.NitroVersion, which is the
// project-file compatibility string a project's nitro.toml is checked
// against.
const version = "nitroc v0.1.0"

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nitroc",
		Short: "nitroc compiles nitro projects to WebAssembly",
	}

	root.AddCommand(newBuildCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the nitroc version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

func newBuildCommand() *cobra.Command {
	var loglevel string
	var optimize bool
	var outputOverride string

	cmd := &cobra.Command{
		Use:   "build [project directory]",
		Short: "compile a nitro project to a .wasm artifact",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := "."
			if len(args) == 1 {
				rootDir = args[0]
			}

			lvl, err := parseLogLevel(loglevel)
			if err != nil {
				return err
			}
			report.SetLogLevel(lvl)

			return runBuild(rootDir, optimize, outputOverride)
		},
	}

	cmd.Flags().StringVarP(&loglevel, "loglevel", "l", "verbose",
		"compiler log level: silent, error, warn, verbose")
	cmd.Flags().BoolVarP(&optimize, "optimize", "O", false,
		"run wasm-opt over the linked artifact")
	cmd.Flags().StringVarP(&outputOverride, "output", "o", "",
		"override the project file's output path")

	return cmd
}

func parseLogLevel(s string) (report.LogLevel, error) {
	switch s {
	case "silent":
		return report.LogLevelSilent, nil
	case "error":
		return report.LogLevelError, nil
	case "warn":
		return report.LogLevelWarn, nil
	case "verbose":
		return report.LogLevelVerbose, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (want silent, error, warn, or verbose)", s)
	}
}
