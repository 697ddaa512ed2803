package report

import (
	"fmt"
	"sort"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// Generate writes one block per template: a header, then one line per
// finding ordered most severe first. Input order is preserved within a
// severity class.
func (r *TextReporter) Generate(data Data) error {
	for i, result := range data.Results {
		if i > 0 {
			fmt.Fprintln(r.Writer)
		}
		if err := r.writeResult(result); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) writeResult(result conformity.ScanResult) error {
	if !result.HasFailures() {
		_, err := fmt.Fprintf(r.Writer, "[%s] No issues found\n", result.Template)
		return err
	}

	findings := make([]conformity.Finding, len(result.Findings))
	copy(findings, result.Findings)
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].RiskLevel.Rank() < findings[j].RiskLevel.Rank()
	})

	if _, err := fmt.Fprintf(r.Writer, "[%s] Found %d issue(s):\n", result.Template, len(findings)); err != nil {
		return err
	}
	for _, f := range findings {
		line := fmt.Sprintf("- %s [%s]", f.RiskLevel, f.RuleID)
		if f.Resource != "" {
			line += " " + f.Resource + ":"
		}
		line += " " + f.Message
		if f.RuleTitle != "" {
			line += fmt.Sprintf(" (%s)", f.RuleTitle)
		}
		if _, err := fmt.Fprintln(r.Writer, line); err != nil {
			return err
		}
	}
	return nil
}
