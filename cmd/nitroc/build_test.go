package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestRunBuildFailsOnMissingProjectFile(t *testing.T) {
	dir := t.TempDir()
	if err := runBuild(dir, false, ""); err == nil {
		t.Fatal("expected an error when nitro.toml is missing")
	}
}

func TestRunBuildFailsOnSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, map[string]string{
		"nitro.toml": `name = "demo"`,
		"main.nitro": `func f( int32 {`,
	})

	err := runBuild(dir, false, "")
	if err == nil {
		t.Fatal("expected a syntax error to fail the build")
	}
}

func TestRunBuildFailsOnSemanticError(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, map[string]string{
		"nitro.toml": `name = "demo"`,
		"main.nitro": `func f() int32 { "use compile"; return true; }`,
	})

	err := runBuild(dir, false, "")
	if err == nil {
		t.Fatal("expected a type error to fail the build")
	}
}

func TestRunBuildFailsWhenNoSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, map[string]string{
		"nitro.toml": `name = "demo"`,
	})

	err := runBuild(dir, false, "")
	if err == nil {
		t.Fatal("expected an error when the project has no .nitro files")
	}
}

func TestParseLogLevelRejectsUnknownValue(t *testing.T) {
	if _, err := parseLogLevel("chatty"); err == nil {
		t.Fatal("expected an error for an unrecognized log level")
	}
}

func TestParseLogLevelAcceptsEveryDocumentedValue(t *testing.T) {
	for _, lvl := range []string{"silent", "error", "warn", "verbose"} {
		if _, err := parseLogLevel(lvl); err != nil {
			t.Fatalf("unexpected error for log level %q: %v", lvl, err)
		}
	}
}
