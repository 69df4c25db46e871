package rules

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/parser/cfgprops"
)

// Usage: go test ./pkg/lint/rules/... -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get test file path")
	}

	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestGolden(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))
	require.NotEmpty(t, cases, "testdata holds golden cases")

	for _, testCase := range cases {
		t.Run(testCase.Name, func(t *testing.T) {
			content, err := os.ReadFile(testCase.InputPath)
			require.NoError(t, err)

			registry := lint.NewRegistry()
			cfg := config.NewConfig()
			if testCase.RuleID == "" {
				RegisterAll(registry)
			} else {
				rule, ok := lint.DefaultRegistry.GetByID(testCase.RuleID)
				require.True(t, ok, "unknown rule %s", testCase.RuleID)
				registry.Register(rule)
				cfg.EnableRules = []string{testCase.RuleID}
			}

			engine := lint.NewEngine(cfgprops.NewFileParser(cfgprops.Options{}), registry)
			result, err := engine.LintFile(context.Background(), filepath.Base(testCase.InputPath), content, cfg)
			require.NoError(t, err)

			if *update {
				writeDiagsJSON(t, testCase.DiagsJSONPath, result.Diagnostics)
				return
			}

			expected := loadExpectedDiags(t, testCase.DiagsJSONPath)
			actual := make([]DiagExpectation, 0, len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				actual = append(actual, diagFromLint(d))
			}

			assert.Equal(t, expected, actual)
		})
	}
}

// TestGoldenFix runs --fix over every golden input. The output must match
// the .fixed.properties file and load to the same properties as the input.
func TestGoldenFix(t *testing.T) {
	cases := discoverTestCases(t, testdataDir(t))

	for _, testCase := range cases {
		t.Run(testCase.Name, func(t *testing.T) {
			content, err := os.ReadFile(testCase.InputPath)
			require.NoError(t, err)

			cfg := config.NewConfig()
			if testCase.RuleID != "" {
				cfg.EnableRules = []string{testCase.RuleID}
			}

			engine := lint.NewEngine(cfgprops.NewFileParser(cfgprops.Options{}), lint.DefaultRegistry)
			result, err := lint.NewPipeline(engine).ProcessContent(context.Background(),
				filepath.Base(testCase.InputPath), content, cfg, lint.PipelineOptions{Fix: true})
			require.NoError(t, err)
			require.False(t, result.Skipped, result.SkipReason)

			fixed := content
			if result.Modified {
				fixed = result.FixedContent
			}

			if *update {
				if result.Modified {
					require.NoError(t, os.WriteFile(testCase.FixedPath, fixed, 0o600))
				}
				return
			}

			want, err := os.ReadFile(testCase.FixedPath)
			if os.IsNotExist(err) {
				want = content
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, string(want), string(fixed))

			assert.Equal(t, flattened(t, content), flattened(t, fixed))
		})
	}
}

func flattened(t *testing.T, content []byte) map[string]string {
	t.Helper()

	res := cfgprops.ParseString(string(content))
	matched, err := res.Matched()
	require.NoError(t, err)
	require.True(t, matched)

	flat, err := res.Flattened()
	require.NoError(t, err)

	return flat.ToMap()
}
