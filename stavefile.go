//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary   = "bin/propslint"
	fixtures = "pkg/lint/rules/testdata/real-world"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"fmt":   Lint.Fmt,
	"bench": Bench.Default,
	"fuzz":  Bench.Fuzz,
	"s":     Smoke,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/propslint when any Go source or go.mod is newer.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building propslint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/propslint")
}

// Check formats, lints, tests and smoke-runs the binary.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Smoke)
}

// Clean removes bin/ and coverage output.
func Clean() error {
	for _, p := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/propslint")
}

// Default runs the tests with the race detector through gotestsum.
func (Test) Default() error {
	jobs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", jobs,
		"./...",
		"-coverprofile=coverage.out",
	)
}

// Golden runs only the golden rule and fix tests.
func (Test) Golden() error {
	return sh.RunV("go", "test", "-run=^TestGolden", "./pkg/lint/rules")
}

// Default runs golangci-lint.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt runs gofmt over the tree.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Default runs the parser benchmark.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=BenchmarkParse", "-benchmem", "./pkg/parser/cfgprops")
}

// Fuzz runs each fuzz target for FUZZTIME (default 30s).
func (Bench) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")

	targets := []struct{ name, pkg string }{
		{"FuzzParse", "./pkg/parser/cfgprops"},
		{"FuzzPrepare", "./pkg/fix"},
		{"FuzzGenerateDiff", "./pkg/fix"},
		{"FuzzWriteThenRead", "./pkg/fsutil"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s for %s...\n", t.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+t.name+"$", "-fuzztime="+fuzzTime, t.pkg); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return nil
}

// Smoke lints the real-world fixtures with the built binary, then shows
// the fixes it would make.
func Smoke() error {
	st.Deps(Build)

	runs := [][]string{
		{"lint", "--format", "summary", fixtures},
		{"lint", "--dry-run", fixtures},
	}
	for _, args := range runs {
		if err := findingsOnly(sh.RunV(binary, args...)); err != nil {
			return fmt.Errorf("smoke %s: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// findingsOnly treats exit codes 1 and 2, which only report findings, as
// success.
func findingsOnly(err error) error {
	var status interface{ ExitStatus() int }
	if err == nil || (errors.As(err, &status) && status.ExitStatus() <= 2) {
		return nil
	}
	return err
}

// ldflags sets main.version, main.commit and main.date.
func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}

	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
