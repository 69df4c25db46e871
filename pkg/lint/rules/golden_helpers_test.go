package rules

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yaklabco/propslint/pkg/lint"
)

// GoldenTestCase is one input file with its expected diagnostics.
type GoldenTestCase struct {
	// Name is derived from the directory and file name.
	Name string

	// InputPath is the properties file to lint.
	InputPath string

	// DiagsJSONPath holds the expected diagnostics.
	DiagsJSONPath string

	// FixedPath holds the expected content after --fix. A case without
	// the file expects no change.
	FixedPath string

	// RuleID is the only rule run; empty runs the default rule set.
	RuleID string
}

// DiagExpectation is the JSON form of an expected diagnostic.
type DiagExpectation struct {
	Rule     string `json:"rule"`
	Name     string `json:"name"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func diagFromLint(diag lint.Diagnostic) DiagExpectation {
	return DiagExpectation{
		Rule:     diag.RuleID,
		Name:     diag.RuleName,
		Line:     diag.StartLine,
		Column:   diag.StartColumn,
		Message:  diag.Message,
		Severity: string(diag.Severity),
	}
}

var ruleDirPattern = regexp.MustCompile(`^PP\d{3}$`)

// discoverTestCases finds testdata/<dir>/*.input.properties. A directory
// named after a rule ID runs only that rule; "real-world" runs the defaults.
func discoverTestCases(t *testing.T, baseDir string) []GoldenTestCase {
	t.Helper()

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read testdata directory: %v", err)
	}

	var cases []GoldenTestCase

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirName := entry.Name()
		ruleID := ""
		switch {
		case ruleDirPattern.MatchString(dirName):
			ruleID = dirName
		case dirName == "real-world":
		default:
			continue
		}

		dirPath := filepath.Join(baseDir, dirName)
		inputs, err := filepath.Glob(filepath.Join(dirPath, "*.input.properties"))
		if err != nil {
			t.Fatalf("failed to glob input files in %s: %v", dirPath, err)
		}

		for _, inputPath := range inputs {
			baseName := strings.TrimSuffix(filepath.Base(inputPath), ".input.properties")
			cases = append(cases, GoldenTestCase{
				Name:          filepath.Join(dirName, baseName),
				InputPath:     inputPath,
				DiagsJSONPath: filepath.Join(dirPath, baseName+".diags.json"),
				FixedPath:     filepath.Join(dirPath, baseName+".fixed.properties"),
				RuleID:        ruleID,
			})
		}
	}

	return cases
}

func loadExpectedDiags(t *testing.T, path string) []DiagExpectation {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read diagnostics file %s: %v", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []DiagExpectation{}
	}

	var diags []DiagExpectation
	if err := json.Unmarshal(data, &diags); err != nil {
		t.Fatalf("failed to parse diagnostics JSON %s: %v", path, err)
	}

	return diags
}

func writeDiagsJSON(t *testing.T, path string, diags []lint.Diagnostic) {
	t.Helper()

	expectations := make([]DiagExpectation, len(diags))
	for i, d := range diags {
		expectations[i] = diagFromLint(d)
	}

	data, err := json.MarshalIndent(expectations, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal diagnostics: %v", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
