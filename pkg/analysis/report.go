package analysis

import "time"

// Report holds the views every renderer draws from.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with a display path.
type DiagnosticEntry struct {
	FilePath    string   `json:"filePath"`
	RuleID      string   `json:"ruleId"`
	RuleName    string   `json:"ruleName"`
	Rule        string   `json:"rule"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Expected    []string `json:"expected,omitempty"`
}

// Totals aggregates a whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	SyntaxErrors    int `json:"filesWithSyntaxErrors"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

func (t Totals) HasIssues() bool { return t.Issues > 0 }

func (t Totals) HasErrors() bool { return t.Errors > 0 }

// FileAnalysis aggregates one file.
type FileAnalysis struct {
	Path string `json:"path"`

	// Matched is false when the file has syntax errors.
	Matched  bool     `json:"matched"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates one rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}
