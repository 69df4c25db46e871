package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		t.Parallel()

		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"PP003": {
					Enabled:  &enabled,
					Severity: &severity,
					Options:  map[string]any{"style": "equals"},
				},
			},
		}

		clone := original.Clone()
		require.Contains(t, clone.Rules, "PP003")
		assert.True(t, *clone.Rules["PP003"].Enabled)
		assert.Equal(t, "equals", clone.Rules["PP003"].Options["style"])

		newSeverity := "warning"
		clone.Rules["PP003"] = config.RuleConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Rules["PP003"].Severity)
	})

	t.Run("preserves CLI fields and copies slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			SeverityDefault: "warning",
			Strategy:        "first",
			Extensions:      []string{".properties", ".props"},
			Ignore:          []string{"target/**"},
			Format:          config.FormatJSON,
			RuleFormat:      config.RuleFormatCombined,
			Jobs:            4,
			EnableRules:     []string{"PP004"},
			DisableRules:    []string{"PP002"},
			Strict:          true,
			NoContext:       true,
			Color:           "never",
		}

		clone := original.Clone()
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".changed"
		assert.Equal(t, "target/**", original.Ignore[0])
		assert.Equal(t, ".properties", original.Extensions[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	var empty *config.Config
	data, err := empty.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	cfg := &config.Config{SeverityDefault: "warning", Strategy: "first", Jobs: 8}
	data, err = cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "severity_default: warning")
	assert.Contains(t, string(data), "strategy: first")
	assert.NotContains(t, string(data), "jobs", "CLI-only fields are not persisted")

	withHeader, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Equal(t, "# header\n\n"+string(data), string(withHeader))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
severity_default: error
strategy: first
extensions: [".properties", ".conf"]
rules:
  PP001:
    enabled: false
`))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, "first", cfg.Strategy)
	assert.Equal(t, []string{".properties", ".conf"}, cfg.Extensions)
	require.Contains(t, cfg.Rules, "PP001")
	assert.False(t, *cfg.Rules["PP001"].Enabled)

	cfg, err = config.FromYAML([]byte(`strategy: furthest`))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Rules)

	_, err = config.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)
}

//nolint:paralleltest // mutates DefaultRuleInfoProvider
func TestGenerateTemplate(t *testing.T) {
	saved := config.DefaultRuleInfoProvider
	t.Cleanup(func() { config.DefaultRuleInfoProvider = saved })

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return []config.RuleInfo{
			{ID: "PP002", Name: "b", Description: "second", Enabled: true, Severity: config.SeverityWarning},
			{ID: "PP001", Name: "a", Description: "first", Enabled: false, Severity: config.SeverityError, CanFix: true},
		}
	}

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	parsed, err := config.FromYAML(minimal)
	require.NoError(t, err, "the minimal template is valid YAML")
	assert.Equal(t, "furthest", parsed.Strategy)
	assert.Equal(t, config.BackupModeSidecar, parsed.Backups.Mode)
	assert.Empty(t, parsed.Rules)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true, IncludeRules: []string{"PP001"}})
	require.NoError(t, err)
	parsed, err = config.FromYAML(full)
	require.NoError(t, err)
	require.Contains(t, parsed.Rules, "PP001")
	assert.NotContains(t, parsed.Rules, "PP002")
	assert.False(t, *parsed.Rules["PP001"].Enabled)
	assert.Contains(t, string(full), "# Fixable with --fix\n  PP001:")

	asJSON, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(asJSON, &decoded))
	assert.Len(t, decoded["rules"], 2)
}

func TestConfigToJSONLoadsAsYAML(t *testing.T) {
	t.Parallel()

	enabled := false
	cfg := config.NewConfig()
	cfg.Rules["PP003"] = config.RuleConfig{Enabled: &enabled}
	cfg.Jobs = 3

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"strategy\": \"furthest\"")
	assert.NotContains(t, string(data), "Jobs")

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Strategy, back.Strategy)
	require.Contains(t, back.Rules, "PP003")
	assert.False(t, *back.Rules["PP003"].Enabled)
}
