package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/config"
	_ "github.com/yaklabco/propslint/pkg/lint/rules" // Register rules
)

// isolated ignores everything outside dir.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, "furthest", result.Config.Strategy)
	assert.Equal(t, "warning", result.Config.SeverityDefault)
	assert.Equal(t, []string{".properties"}, result.Config.Extensions)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, ".propslint.yml", `
strategy: first
extensions: [".properties", ".props"]
rules:
  PP001:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, "first", result.Config.Strategy)
	assert.Equal(t, []string{".properties", ".props"}, result.Config.Extensions)

	pp001, ok := result.Config.Rules["PP001"]
	require.True(t, ok)
	require.NotNil(t, pp001.Enabled)
	assert.False(t, *pp001.Enabled)

	assert.Equal(t, []string{configPath}, result.LoadedFrom)
	assert.Equal(t, configPath, result.Paths.Project)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	configPath := writeConfig(t, tmpDir, "propslint.yaml", "severity_default: error\n")

	sub := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, configPath, result.Paths.Project)
	assert.Equal(t, "error", result.Config.SeverityDefault)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	projectPath := writeConfig(t, tmpDir, ".propslint.yml", "strategy: first\nseverity_default: info\n")
	customPath := writeConfig(t, tmpDir, "custom.yml", "severity_default: error\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "first", result.Config.Strategy, "project value survives")
	assert.Equal(t, "error", result.Config.SeverityDefault, "explicit file wins")
	assert.Equal(t, []string{projectPath, customPath}, result.LoadedFrom)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".propslint.yml", "strategy: first\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Strategy:     "furthest",
		Jobs:         3,
		Format:       config.FormatJSON,
		DisableRules: []string{"PP003"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "furthest", result.Config.Strategy)
	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, []string{"PP003"}, result.Config.DisableRules)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "strategy", content: "strategy: longest\n", field: "strategy"},
		{name: "severity", content: "severity_default: fatal\n", field: "severity_default"},
		{name: "rule severity", content: "rules:\n  PP001:\n    severity: loud\n", field: "rules.PP001.severity"},
		{name: "extension", content: "extensions: [properties]\n", field: "extensions[0]"},
		{name: "ignore glob", content: "ignore: [\"[\"]\n", field: "ignore[0]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".propslint.yml", testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, testCase.field, verr.Field)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".propslint.yml", "rules: [unclosed\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, ".propslint.yml", "strategy: first\nflavor: gfm\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, configPath+":2: flavor: unknown configuration key; it will be ignored", result.Warnings[0])
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".propslint.yml", `
rules:
  duplicate-key:
    enabled: false
  separator:
    severity: error
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Contains(t, result.Config.Rules, "PP001")
	assert.NotContains(t, result.Config.Rules, "duplicate-key")

	pp003, ok := result.Config.Rules["PP003"]
	require.True(t, ok, "aliases resolve too")
	require.NotNil(t, pp003.Severity)
	assert.Equal(t, "error", *pp003.Severity)
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".propslint.yml", `
rules:
  PP001:
    enabled: false
  duplicate-key:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate rule configuration") && strings.Contains(w, "PP001") {
			found = true
		}
	}
	assert.True(t, found, "warnings: %v", result.Warnings)

	// Keys are visited sorted: "PP001" < "duplicate-key", so the name wins.
	pp001 := result.Config.Rules["PP001"]
	require.NotNil(t, pp001.Enabled)
	assert.True(t, *pp001.Enabled)
}

func TestLoader_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".propslint.yml", "rules:\n  PP999:\n    enabled: true\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, []string{`rules.PP999: unknown rule "PP999"; it will be ignored`}, result.Warnings)
}
