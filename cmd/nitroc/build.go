package main

import (
	"fmt"

	"nitro/internal/assembler"
	"nitro/internal/depm"
	"nitro/internal/linker"
	"nitro/internal/report"
)

// runBuild drives the whole pipeline over one project directory: load
// config, parse every source file, type-check, assemble into one LLVM
// module, and link to a .wasm artifact. It mirrors the teacher's
// execBuildCommand phase sequence ("if analysis succeeds, run
// generation"), collapsed from chai's multi-package Analyze/Generate
// split down to this specification's single linear pipeline.
func runBuild(rootDir string, optimize bool, outputOverride string) error {
	proj, err := depm.LoadProject(rootDir)
	if err != nil {
		return err
	}
	if outputOverride != "" {
		proj.OutputPath = outputOverride
	}
	if optimize {
		proj.Optimize = true
	}

	report.DisplayInfo("compiling project %q", proj.Name)

	files, err := proj.SourceFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("nitroc: no .nitro source files found in %q", rootDir)
	}

	parsed, err := depm.Parse(files)
	if err != nil {
		return err
	}
	if len(parsed.SyntaxErrors) > 0 {
		for path, syntaxErr := range parsed.SyntaxErrors {
			report.DisplayError(report.New(report.KindMalformedFunction, report.Position{},
				"%s: %s", path, syntaxErr))
		}
		return fmt.Errorf("nitroc: build failed with syntax errors in %d file(s)", len(parsed.SyntaxErrors))
	}

	checked := depm.Check(parsed.Decls)
	if checked.Aggregator.AnyErrors() {
		report.DisplaySummary(checked.Aggregator)
		return fmt.Errorf("nitroc: build failed with semantic errors")
	}

	result := assembler.Assemble(checked.Resolver, checked.Decls)
	report.DisplaySummary(result.Aggregator)
	if !result.Succeeded() {
		return fmt.Errorf("nitroc: build failed while assembling the module")
	}

	if err := linker.Link(result.Module, linker.Options{
		OutputPath: proj.OutputPath,
		Optimize:   proj.Optimize,
	}); err != nil {
		return err
	}

	report.DisplayInfo("wrote %s", proj.OutputPath)
	return nil
}
