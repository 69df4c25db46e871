package lint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/fsutil"
	"github.com/yaklabco/propslint/pkg/propast"
)

// DefaultMaxFixPasses bounds the fix loop. Edits skipped for overlapping
// an accepted one are retried on the next pass.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the parser could not run (not a syntax error).
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates the fixed file could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	// FileResult is the lint result of the final content: after fixing,
	// the issues that remain.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Info is the file state when it was read. Nil for in-memory content.
	Info *fsutil.FileInfo

	// Modified is true when fixes changed the content.
	Modified bool

	// FixedContent is the content after fixing, nil when not Modified.
	FixedContent []byte

	// Diff is set in dry-run mode when the content was Modified.
	Diff *fix.Diff

	// FixPasses and EditsApplied count the work of the fix loop.
	FixPasses    int
	EditsApplied int

	// Skipped is set when fixes were computed but dropped; SkipReason says why.
	Skipped    bool
	SkipReason string

	Written       bool
	BackupCreated bool
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult == nil:
		return "not linted"
	case pr.Snapshot != nil && !pr.Snapshot.Matched:
		return "syntax error"
	case pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls fixing.
type PipelineOptions struct {
	// Fix applies the edits of fixable diagnostics.
	Fix bool

	// DryRun computes a diff instead of writing.
	DryRun bool

	// Backup writes a sidecar copy before the first write.
	Backup bool

	// MaxFixPasses limits the fix loop; 0 means DefaultMaxFixPasses.
	MaxFixPasses int
}

// PipelineOptionsFromConfig reads the fix settings of cfg.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{}
	}
	return PipelineOptions{
		Fix:    cfg.Fix || cfg.DryRun,
		DryRun: cfg.DryRun,
		Backup: cfg.Backups.Active() && !cfg.NoBackups,
	}
}

// Pipeline reads a file from disk, lints it and optionally fixes it.
type Pipeline struct {
	// Engine is the lint engine used for parsing and rule execution.
	Engine *Engine
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path, lints it and, in fix mode, writes the fixed
// content back:
//  1. lint and fix in memory (ProcessContent),
//  2. stop if the file changed on disk meanwhile,
//  3. write the backup, then the new content, atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Info = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	changed, err := info.Changed(ctx)
	if err != nil {
		return nil, categorizeError(err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup {
		result.BackupCreated, err = fsutil.CreateBackup(ctx, path, content, info.Mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
	}

	if err := fsutil.WriteAtomic(ctx, path, result.FixedContent, info.Mode.Perm()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent lints in-memory content. In fix mode it applies edits
// and re-lints until no edits remain or the pass limit is hit. A fix is
// dropped unless the fixed content parses to the same key/value map as
// the original.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	var original *propast.FileSnapshot
	current := content

	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, current, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fileResult
		if original == nil {
			original = fileResult.Snapshot
		}

		if !opts.Fix || len(fileResult.Edits) == 0 || pass == maxPasses {
			break
		}

		current = fix.ApplyEdits(current, fileResult.Edits)
		result.FixPasses++
		result.EditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	if reason := fixBroke(original, result.Snapshot); reason != "" {
		result.Skipped = true
		result.SkipReason = reason
		result.Modified = false
		return result, nil
	}

	result.FixedContent = current
	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, content, current)
	}

	return result, nil
}

// fixBroke returns why fixed no longer means what original meant, or "".
func fixBroke(original, fixed *propast.FileSnapshot) string {
	switch {
	case fixed == nil || !fixed.Matched:
		return "fixed content does not parse"
	case !maps.Equal(original.Flat.ToMap(), fixed.Flat.ToMap()):
		return "fixes would change the loaded properties"
	default:
		return ""
	}
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
