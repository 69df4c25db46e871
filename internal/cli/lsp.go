package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/propslint/internal/configloader"
	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/internal/lsp"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Run a Language Server Protocol server on stdin and stdout.

Editors send open, change and save notifications; propslint re-parses the
document and publishes the same diagnostics that 'propslint lint' reports.
Configuration is loaded from the workspace root the editor names, falling
back to the current directory. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}
			debug, _ := cmd.Flags().GetBool("debug")

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			load := func(ctx context.Context, dir string) (*config.Config, error) {
				result, err := configloader.Load(ctx, configloader.LoadOptions{
					WorkingDir:   dir,
					ExplicitPath: configPath,
				})
				if err != nil {
					return nil, err
				}
				for _, warning := range result.Warnings {
					logging.FromContext(ctx).Warn(warning)
				}
				return result.Config, nil
			}

			cfg, err := load(ctx, workDir)
			if err != nil {
				return errors.Join(errors.New("failed to load configuration"), err)
			}

			server, err := lsp.New(ctx, lsp.Options{
				Version:    info.Version,
				Config:     cfg,
				LoadConfig: load,
				Registry:   lint.DefaultRegistry,
				Debug:      debug,
			})
			if err != nil {
				return withExitCode(ExitConfigError, err)
			}

			return server.RunStdio()
		},
	}
}
