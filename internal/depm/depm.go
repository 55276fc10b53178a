// Package depm loads a nitro project (a `nitro.toml` project file plus
// one or more `.nitro` source files) into the flat []*ast.FuncDecl work
// list the rest of the pipeline -- internal/typecheck, internal/assembler,
// internal/linker -- consumes. It plays the role the teacher's
// bootstrap/depm package plays for a whole Chai module tree, trimmed from
// a package/sub-package dependency graph down to this specification's
// single compilation unit (SPEC_FULL.md's Non-goals exclude a
// multi-package import system).
package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nitro/internal/ast"
	"nitro/internal/parser"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/typecheck"
)

// projectFile mirrors the teacher's tomlModule: the on-disk shape of
// nitro.toml, deserialized before any validation is applied.
type projectFile struct {
	Name         string `toml:"name"`
	NitroVersion string `toml:"nitro-version"`
	Output       string `toml:"output"`
	Optimize     bool   `toml:"optimize"`
}

// NitroVersion is the version string nitro.toml's nitro-version field is
// checked against, the same role common.ChaiVersion plays in the
// teacher's load_mod.go.
const NitroVersion = "0.1.0"

// Project is a loaded, validated nitro project: its config plus the
// absolute path its sources are read relative to.
type Project struct {
	Name       string
	OutputPath string
	Optimize   bool
	RootDir    string
}

// LoadProject reads and validates the nitro.toml file at
// filepath.Join(rootDir, "nitro.toml"), mirroring the teacher's
// LoadModule: open, unmarshal, validate required fields, warn (not fail)
// on a version mismatch.
func LoadProject(rootDir string) (*Project, error) {
	path := filepath.Join(rootDir, "nitro.toml")
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("depm: unable to open project file at %q: %w", path, err)
	}

	var pf projectFile
	if err := toml.Unmarshal(buf, &pf); err != nil {
		return nil, fmt.Errorf("depm: error parsing project file at %q: %w", path, err)
	}

	if pf.Name == "" {
		return nil, fmt.Errorf("depm: project file at %q is missing a %q field", path, "name")
	}
	if pf.Output == "" {
		pf.Output = pf.Name + ".wasm"
	}
	if pf.NitroVersion != "" && pf.NitroVersion != NitroVersion {
		report.DisplayWarning(report.Position{},
			"project %q targets nitro v%s, which does not match the running compiler (v%s)",
			pf.Name, pf.NitroVersion, NitroVersion)
	}

	return &Project{
		Name:       pf.Name,
		OutputPath: filepath.Join(rootDir, pf.Output),
		Optimize:   pf.Optimize,
		RootDir:    rootDir,
	}, nil
}

// SourceFiles returns every `.nitro` file directly under proj's root
// directory, in lexical order for build reproducibility. This
// specification has no sub-package tree to walk (spec.md's surface is a
// single compilation unit), so unlike the teacher's recursive
// package-discovery walk this is a single, non-recursive directory read.
func (proj *Project) SourceFiles() ([]string, error) {
	entries, err := os.ReadDir(proj.RootDir)
	if err != nil {
		return nil, fmt.Errorf("depm: cannot read project directory %q: %w", proj.RootDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".nitro" {
			continue
		}
		files = append(files, filepath.Join(proj.RootDir, e.Name()))
	}
	return files, nil
}

// ParseResult is everything Parse produces from a project's source
// files: the flat declaration list every downstream stage consumes, plus
// any syntax errors keyed by file.
type ParseResult struct {
	Decls []*ast.FuncDecl
	// SyntaxErrors maps a source file path to the parse error that
	// aborted it. A file with a syntax error contributes no declarations
	// -- there is no partial-function recovery at the parser stage,
	// matching the teacher's parser, which also aborts a file wholesale
	// on its first syntax error rather than attempting resynchronization.
	SyntaxErrors map[string]error
}

// Parse reads and parses every source file in files, merging their
// top-level function declarations into one flat list (this
// specification's single compilation unit has no notion of a file
// boundary beyond where a declaration's source happened to live).
func Parse(files []string) (*ParseResult, error) {
	result := &ParseResult{SyntaxErrors: make(map[string]error)}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("depm: cannot read source file %q: %w", path, err)
		}

		p, err := parser.New(string(src))
		if err != nil {
			result.SyntaxErrors[path] = err
			continue
		}
		decls, err := p.ParseProgram()
		if err != nil {
			result.SyntaxErrors[path] = err
			continue
		}
		result.Decls = append(result.Decls, decls...)
	}
	return result, nil
}

// CheckResult bundles a type-checked program's resolver and error
// aggregation, ready to hand to internal/assembler.Assemble.
type CheckResult struct {
	Decls      []*ast.FuncDecl
	Resolver   *resolve.Table
	Aggregator *report.Aggregator
}

// Check runs internal/typecheck over decls, producing the annotated
// program internal/assembler.Assemble expects. A project with one or
// more syntax errors should never reach this stage -- cmd/nitroc's
// runBuild enforces that ordering.
func Check(decls []*ast.FuncDecl) *CheckResult {
	table, agg := typecheck.Check(decls)
	return &CheckResult{Decls: decls, Resolver: table, Aggregator: agg}
}
