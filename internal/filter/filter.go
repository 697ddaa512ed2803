// Package filter applies user-configured exclusions to scan findings.
package filter

import (
	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// Exclude drops findings whose risk level is in levels or whose rule ID
// is in rules; either match alone suffices. The filter is purely
// subtractive and preserves input order.
func Exclude(findings []conformity.Finding, levels, rules []string) []conformity.Finding {
	if len(levels) == 0 && len(rules) == 0 {
		return findings
	}

	excludedLevels := toSet(levels)
	excludedRules := toSet(rules)

	filtered := make([]conformity.Finding, 0, len(findings))
	for _, f := range findings {
		if excludedLevels[string(f.RiskLevel)] || excludedRules[f.RuleID] {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
