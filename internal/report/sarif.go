package report

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Generate writes SARIF v2.1.0 output. The Conformity rule catalogue is
// open-ended, so the driver rules are derived from the findings observed
// in this run rather than a fixed table.
func (r *SARIFReporter) Generate(data Data) error {
	var results []sarifResult
	rulesSeen := make(map[string]sarifRule)

	for _, result := range data.Results {
		for _, f := range result.Findings {
			if _, ok := rulesSeen[f.RuleID]; !ok {
				title := f.RuleTitle
				if title == "" {
					title = f.RuleID
				}
				rulesSeen[f.RuleID] = sarifRule{
					ID:               f.RuleID,
					ShortDescription: sarifMessage{Text: title},
					DefaultConfig:    sarifDefaultLevel{Level: sarifLevel(f.RiskLevel)},
				}
			}

			results = append(results, sarifResult{
				RuleID:  f.RuleID,
				Level:   sarifLevel(f.RiskLevel),
				Message: sarifMessage{Text: f.Message},
				Locations: []sarifLoc{
					{
						PhysicalLocation: sarifPhysical{
							ArtifactLocation: sarifArtifact{URI: result.Template},
						},
					},
				},
				Props: map[string]any{
					"resource":  f.Resource,
					"riskLevel": string(f.RiskLevel),
					"status":    f.Status,
				},
			})
		}
	}

	rules := make([]sarifRule, 0, len(rulesSeen))
	for _, rule := range rulesSeen {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func sarifLevel(l conformity.RiskLevel) string {
	switch l {
	case conformity.RiskExtreme, conformity.RiskVeryHigh, conformity.RiskHigh:
		return "error"
	case conformity.RiskMedium:
		return "warning"
	default:
		return "note"
	}
}
