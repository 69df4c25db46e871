package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "propslint"
	toolURI        = "https://github.com/yaklabco/propslint"
)

// SARIFOutput is the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

type SARIFMultiformatText struct {
	Text string `json:"text"`
}

type SARIFRuleConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
}

// SARIFResult is one diagnostic. RuleIndex points into the driver rules.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type SARIFMessage struct {
	Text string `json:"text"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion uses 1-based lines and columns; EndColumn is exclusive.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter writes SARIF 2.1.0 for code-scanning integrations.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        r.opts.ToolVersion,
			InformationURI: toolURI,
			Rules:          make([]SARIFRule, 0, len(r.opts.Rules)),
		}},
		Results: make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int, len(r.opts.Rules))
	for _, info := range r.opts.Rules {
		ruleIndex[info.ID] = len(run.Tool.Driver.Rules)
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
			ID:               info.ID,
			Name:             info.Name,
			ShortDescription: SARIFMultiformatText{Text: info.Description},
			DefaultConfig:    &SARIFRuleConfig{Enabled: info.Enabled, Level: severityToSARIFLevel(info.Severity)},
			Properties:       map[string]any{"tags": info.Tags},
		})
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}

			uri := filepath.ToSlash(r.opts.displayPath(file.Path))

			for _, diag := range file.Result.Diagnostics {
				idx, ok := ruleIndex[diag.RuleID]
				if !ok {
					// Rules not described up front are added on first use.
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[diag.RuleID] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:               diag.RuleID,
						Name:             diag.RuleName,
						ShortDescription: SARIFMultiformatText{Text: diag.RuleName},
					})
				}

				res := SARIFResult{
					RuleID:    diag.RuleID,
					RuleIndex: idx,
					Level:     severityToSARIFLevel(diag.Severity),
					Message:   SARIFMessage{Text: diag.Message},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
							Region: SARIFRegion{
								StartLine:   diag.StartLine,
								StartColumn: diag.StartColumn,
								EndLine:     diag.EndLine,
								EndColumn:   diag.EndColumn,
							},
						},
					}},
				}
				if len(diag.Expected) > 0 {
					res.Properties = map[string]any{"expected": diag.Expected}
				}

				run.Results = append(run.Results, res)
			}
		}
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
