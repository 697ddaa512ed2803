package conformity

// RiskLevel classifies the severity of a finding as reported by the
// Conformity service.
type RiskLevel string

const (
	RiskExtreme  RiskLevel = "EXTREME"
	RiskVeryHigh RiskLevel = "VERY_HIGH"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

// RiskLevels lists the service's risk classes from most to least severe.
var RiskLevels = []RiskLevel{RiskExtreme, RiskVeryHigh, RiskHigh, RiskMedium, RiskLow}

// Rank orders risk levels for display: 0 is the most severe. Unknown
// levels sort last.
func (l RiskLevel) Rank() int {
	for i, known := range RiskLevels {
		if l == known {
			return i
		}
	}
	return len(RiskLevels)
}

// ValidRiskLevel reports whether s names a known risk level.
func ValidRiskLevel(s string) bool {
	for _, l := range RiskLevels {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Finding is a single failed check reported by the template scanner.
type Finding struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	RiskLevel       RiskLevel `json:"risk_level"`
	PrettyRiskLevel string    `json:"pretty_risk_level,omitempty"`
	Message         string    `json:"message"`
	Resource        string    `json:"resource,omitempty"`
	RuleID          string    `json:"rule_id"`
	RuleTitle       string    `json:"rule_title,omitempty"`
}

// ScanResult holds the findings that remain for one template after
// exclusions have been applied.
type ScanResult struct {
	Template string    `json:"template"`
	Findings []Finding `json:"findings"`
}

// HasFailures reports whether any findings remain for this template.
func (r ScanResult) HasFailures() bool {
	return len(r.Findings) > 0
}
