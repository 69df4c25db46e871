package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fsutil"
	"github.com/yaklabco/propslint/pkg/lint/rules"
)

const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a propslint configuration file",
		Long: `Create a .propslint.yml configuration file in the current directory.

A rule pack seeds the rule settings:
  core      built-in defaults
  strict    every rule as an error, '=' separators, no empty values
  relaxed   only syntax errors fail; style findings are informational

Examples:
  propslint init                    Create a minimal .propslint.yml
  propslint init --full             Document every rule
  propslint init --pack strict      Start from the strict pack
  propslint init --format json      Create .propslint.json instead`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default .propslint.yml or .propslint.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".propslint.yml"
		if flags.format == formatJSON {
			outputPath = ".propslint.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	var content []byte
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return withExitCode(ExitInvalidUsage, fmt.Errorf("unknown pack %q; available packs: %s",
				flags.pack, strings.Join(rules.PackNames(), ", ")))
		}
		content, err = packTemplate(*pack, flags.format)
	} else {
		content, err = config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: flags.format})
	}
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldPack, flags.pack)
	logger.Info("run 'propslint rules' to see all available rules")

	return nil
}

// packTemplate renders the defaults with pack's rule settings.
func packTemplate(pack rules.Pack, format string) ([]byte, error) {
	cfg := config.NewConfig()
	pack.Apply(cfg)

	if format == formatJSON {
		return cfg.ToJSON()
	}

	header := config.DefaultTemplateHeader() + "\n# Pack: " + pack.Name + " - " + pack.Description
	data, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("pack %s", pack.Name), err)
	}
	return data, nil
}
