// Package analysis folds a runner result into per-file and per-rule views
// shared by the summary, table and JSON renderers.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/runner"
)

// ReportVersion is the report schema version.
const ReportVersion = "1.0.0"

// RelativePath returns absPath relative to workDir, or absPath unchanged.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

type accumulator struct {
	files     map[string]*FileAnalysis
	rules     map[string]*RuleAnalysis
	fileRules map[string]map[string]struct{}
	ruleFiles map[string]map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		files:     make(map[string]*FileAnalysis),
		rules:     make(map[string]*RuleAnalysis),
		fileRules: make(map[string]map[string]struct{}),
		ruleFiles: make(map[string]map[string]struct{}),
	}
}

func (a *accumulator) file(path string, matched bool) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path, Matched: matched}
		a.files[path] = fa
		a.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (a *accumulator) rule(id, name string) *RuleAnalysis {
	ra, ok := a.rules[id]
	if !ok {
		ra = &RuleAnalysis{RuleID: id, RuleName: name}
		a.rules[id] = ra
		a.ruleFiles[id] = make(map[string]struct{})
	}
	return ra
}

// count bumps the severity counter among errors, warnings and infos.
func count(severity config.Severity, errs, warns, infos *int) {
	switch severity {
	case config.SeverityError:
		*errs++
	case config.SeverityInfo:
		*infos++
	default:
		*warns++
	}
}

func entry(path string, severity config.Severity, ruleFormat config.RuleFormat, diag *lint.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Rule:        ruleFormat.Label(diag.RuleID, diag.RuleName),
		Severity:    string(severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Expected:    diag.Expected,
	}
}

// Analyze builds a Report in one pass over the diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator()
	totals := &report.Totals

	for _, file := range result.Files {
		totals.Files++
		if file.Error != nil {
			totals.FilesErrored++
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		matched := file.Result.Snapshot == nil || file.Result.Snapshot.Matched
		if !matched {
			totals.SyntaxErrors++
		}
		if len(file.Result.Diagnostics) > 0 {
			totals.FilesWithIssues++
		}

		path := RelativePath(file.Path, opts.WorkingDir)
		fa := acc.file(path, matched)

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			severity := cmp.Or(diag.Severity, config.SeverityWarning)

			totals.Issues++
			count(severity, &totals.Errors, &totals.Warnings, &totals.Infos)

			fa.Issues++
			count(severity, &fa.Errors, &fa.Warnings, &fa.Infos)
			acc.fileRules[path][diag.RuleID] = struct{}{}

			ra := acc.rule(diag.RuleID, diag.RuleName)
			ra.Issues++
			count(severity, &ra.Errors, &ra.Warnings, &ra.Infos)
			acc.ruleFiles[diag.RuleID][path] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, entry(path, severity, opts.RuleFormat, diag))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = acc.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile(opts)
	}

	return report
}

func (a *accumulator) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for id, ra := range a.rules {
		ra.Files = sortedKeys(a.ruleFiles[id])
		out = append(out, *ra)
	}

	slices.SortFunc(out, func(l, r RuleAnalysis) int {
		return compareCounts(opts, l.RuleID, r.RuleID,
			[3]int{l.Errors, l.Warnings, l.Issues}, [3]int{r.Errors, r.Warnings, r.Issues})
	})

	return out
}

// byFile lists files that have issues or failed to parse.
func (a *accumulator) byFile(opts Options) []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range a.files {
		if fa.Issues == 0 {
			continue
		}
		fa.Rules = sortedKeys(a.fileRules[path])
		out = append(out, *fa)
	}

	slices.SortFunc(out, func(l, r FileAnalysis) int {
		return compareCounts(opts, l.Path, r.Path,
			[3]int{l.Errors, l.Warnings, l.Issues}, [3]int{r.Errors, r.Warnings, r.Issues})
	})

	return out
}

// compareCounts orders by opts.SortBy. Counts are {errors, warnings,
// issues}; ties fall back to the name so output is stable.
func compareCounts(opts Options, lName, rName string, l, r [3]int) int {
	var c int

	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		c = cmp.Or(cmp.Compare(r[0], l[0]), cmp.Compare(r[1], l[1]), cmp.Compare(r[2], l[2]))
	default:
		c = cmp.Compare(l[2], r[2])
		if opts.SortDesc {
			c = -c
		}
	}

	return cmp.Or(c, cmp.Compare(lName, rName))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
