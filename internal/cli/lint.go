package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/propslint/internal/configloader"
	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/lint/rules"
	"github.com/yaklabco/propslint/pkg/parser/cfgprops"
	"github.com/yaklabco/propslint/pkg/parser/diag"
	"github.com/yaklabco/propslint/pkg/reporter"
	"github.com/yaklabco/propslint/pkg/runner"
)

type lintFlags struct {
	format          string
	strategy        string
	ruleFormat      string
	extensions      []string
	include         []string
	ignore          []string
	enable          []string
	disable         []string
	jobs            int
	strict          bool
	noContext       bool
	noSummary       bool
	compact         bool
	detectContent   bool
	includeVendored bool
	followSymlinks  bool
	fix             bool
	dryRun          bool
	noBackup        bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint .properties files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint .properties files for syntax errors and style issues.

Directories are walked recursively and every file with a configured extension
(.properties by default) is linted. Files named on the command line are always
linted, whatever their extension. Hidden and vendored directories are skipped.

Examples:
  propslint lint                          # Lint the current directory
  propslint lint src/main/resources       # Lint one directory
  propslint lint app.properties           # Lint a single file
  propslint lint --format sarif > out.sarif
  propslint lint --strategy first         # Report the first syntax error
  propslint lint --disable separator-style --strict
  propslint lint --fix                    # Apply safe fixes in place
  propslint lint --fix --dry-run          # Show the fixes as a diff

--fix deletes overridden duplicate keys and rewrites separators to the
configured style. A fix is dropped for a file when the fixed content would
load to a different key/value map. Before the first write a copy of the file
is kept next to it as <file>.propslint.bak unless --no-backup is given.`

// cliConfig turns explicitly set flags into the highest-precedence layer.
func (f *lintFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Jobs:         f.jobs,
		Strict:       f.strict,
		NoContext:    f.noContext,
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
		RuleFormat:   config.RuleFormat(f.ruleFormat),
		Fix:          f.fix || f.dryRun,
		DryRun:       f.dryRun,
		NoBackups:    f.noBackup,
	}

	switch {
	case cmd.Flags().Changed("format"):
		cfg.Format = config.OutputFormat(f.format)
	case f.dryRun:
		cfg.Format = config.FormatDiff
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if cmd.Flags().Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if cmd.Flags().Changed("color") {
		cfg.Color, _ = cmd.Flags().GetString("color")
	}

	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	strategy, err := diag.ParseStrategy(cfg.Strategy)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	logger.Debug("configuration resolved",
		logging.FieldStrategy, strategy,
		logging.FieldFormat, format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
	)

	engine := lint.NewEngine(cfgprops.NewFileParser(cfgprops.Options{Strategy: strategy}), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	result, err := lintRunner.Run(ctx, runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      cfg.Extensions,
		IncludeGlobs:    flags.include,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		DetectContent:   flags.detectContent,
		IncludeVendored: flags.includeVendored,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	})
	if err != nil {
		err = errors.Join(errors.New("lint run failed"), err)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return withExitCode(ExitIOError, err)
		}
		return err
	}

	logger.Debug("lint run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldSyntaxErrors, result.Stats.FilesWithSyntaxErrors,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesFixed, result.Stats.FilesFixed,
		logging.FieldEditsApplied, result.Stats.EditsApplied,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowContext: !cfg.NoContext,
		ShowSummary: !flags.noSummary,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
		ToolVersion: info.Version,
		Rules:       rules.RuleInfos(lint.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return withExitCode(code, ErrLintIssuesFound)
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary, diff")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "furthest",
		"which syntax error is reported first: furthest, first")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions collected from directories")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns a walked file must match")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the totals line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON and SARIF output")
	cmd.Flags().BoolVar(&flags.detectContent, "detect", false,
		"also lint files whose name or content looks like a properties file")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "walk vendor/, node_modules/ and similar")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "apply safe fixes in place")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes as a diff without writing; implies --fix")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "do not keep a .propslint.bak copy of fixed files")
}
