// Package runner lints many properties files concurrently.
package runner

import "github.com/yaklabco/propslint/pkg/config"

// Options controls discovery and concurrency.
type Options struct {
	// Paths are files or directories to lint. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means os.Getwd().
	WorkingDir string

	// Extensions lists lowercase extensions (with the dot) that are linted
	// without sniffing. Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs narrows the walk; empty includes everything.
	IncludeGlobs []string

	// ExcludeGlobs skips files and whole directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// DetectContent also lints files whose extension is not listed when
	// their name or content identifies them as properties files.
	DetectContent bool

	// IncludeVendored disables the vendored-path filter (vendor/,
	// node_modules/, third_party/ and similar).
	IncludeVendored bool

	// Jobs caps the worker count; <= 0 means runtime.NumCPU().
	Jobs int

	Config *config.Config
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
