package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo is one rule in `rules --format json`.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	NeedsMatch  bool     `json:"needsMatch"`
	CanFix      bool     `json:"canFix"`
	Tags        []string `json:"tags"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List every lint rule with its ID, name, default severity and whether it
is enabled by default. Rules marked "needs clean parse" are skipped for files
that contain syntax errors.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), lint.DefaultRegistry, rules)
			}
			if flags.format != "text" {
				return withExitCode(ExitInvalidUsage,
					fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			logger := logging.NewInteractive()
			logger.Info("available rules")

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			for _, rule := range rules {
				logger.Info(ruleFormat.Label(rule.ID(), rule.Name()),
					logging.FieldSeverity, rule.DefaultSeverity(),
					logging.FieldEnabled, rule.DefaultEnabled(),
					logging.FieldNeedsMatch, rule.NeedsMatch(),
					logging.FieldCanFix, rule.CanFix(),
					logging.FieldTags, strings.Join(rule.Tags(), ","),
					logging.FieldAliases, strings.Join(lint.DefaultRegistry.AliasesOf(rule.ID()), ","),
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func outputRulesJSON(w io.Writer, registry *lint.Registry, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			NeedsMatch:  rule.NeedsMatch(),
			CanFix:      rule.CanFix(),
			Tags:        rule.Tags(),
			Aliases:     registry.AliasesOf(rule.ID()),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
