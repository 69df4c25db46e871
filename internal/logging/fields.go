package logging

// Structured log keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldURI        = "uri"

	// Configuration.
	FieldConfig   = "config"
	FieldStrategy = "strategy"
	FieldFormat   = "format"
	FieldPack     = "pack"
	FieldJobs     = "jobs"

	// Run statistics.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldSyntaxErrors     = "syntax_errors"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldSkippedRules     = "skipped_rules"
	FieldStatus           = "status"
	FieldFilesFixed       = "files_fixed"
	FieldEditsApplied     = "edits_applied"
	FieldFix              = "fix"
	FieldDryRun           = "dry_run"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rules.
	FieldRule        = "rule"
	FieldSeverity    = "severity"
	FieldEnabled     = "enabled"
	FieldTags        = "tags"
	FieldNeedsMatch  = "needs_match"
	FieldDescription = "description"
	FieldAliases     = "aliases"
	FieldCanFix      = "can_fix"
)
