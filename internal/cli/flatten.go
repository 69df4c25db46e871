package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/fsutil"
	"github.com/yaklabco/propslint/pkg/parser/cfgprops"
	"github.com/yaklabco/propslint/pkg/parser/diag"
	"github.com/yaklabco/propslint/pkg/parser/escape"
	"github.com/yaklabco/propslint/pkg/propast"
)

const outputFilePermissions = 0o644

type flattenFlags struct {
	format   string
	output   string
	strategy string
}

func newFlattenCommand() *cobra.Command {
	flags := &flattenFlags{}

	cmd := &cobra.Command{
		Use:   "flatten FILE",
		Short: "Print the effective key/value map of a .properties file",
		Long: `Parse FILE and print its flattened map: continuation lines are joined,
escapes are resolved and, for repeated keys, the last value wins. Keys keep
the order of their first occurrence.

Examples:
  propslint flatten app.properties
  propslint flatten --format json app.properties
  propslint flatten --format yaml -o app.yaml app.properties`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "properties", "output format: properties, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "furthest",
		"which syntax error is reported first: furthest, first")

	return cmd
}

func runFlatten(cmd *cobra.Command, path string, flags *flattenFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	strategy, err := diag.ParseStrategy(flags.strategy)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	res, err := cfgprops.New(cfgprops.Options{Strategy: strategy}).Parse(ctx, string(content))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	flat, err := res.Flattened()
	if err != nil {
		return fmt.Errorf("flatten %s: %w", path, err)
	}

	out, err := encodeFlat(flat, flags.format)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, out, outputFilePermissions)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write %s: %w", flags.output, err))
	}

	logger.Debug("flattened", logging.FieldPath, path, logging.FieldOutput, flags.output, "changed", changed)

	return nil
}

func encodeFlat(flat *propast.OrderedMap, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(format) {
	case "properties", "":
		writeProperties(&buf, flat)
	case "json":
		data, err := json.MarshalIndent(flat, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	case "yaml", "yml":
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(flat); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("encode YAML: %w", err)
		}
	default:
		return nil, withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be properties, json or yaml", format))
	}

	return buf.Bytes(), nil
}

// writeProperties writes one escaped key=value line per entry.
func writeProperties(w io.Writer, flat *propast.OrderedMap) {
	flat.Range(func(key, value string) bool {
		fmt.Fprintf(w, "%s=%s\n", escape.EscapeKey(key), escape.EscapeValue(value))
		return true
	})
}
