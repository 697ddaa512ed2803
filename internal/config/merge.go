package config

import (
	"strings"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// DefaultRegion is the Conformity API region used when no source names one.
const DefaultRegion = "eu-west-1"

// Resolved is the final configuration for one invocation. It is built
// once by Resolve and not mutated afterwards.
type Resolved struct {
	APIKey        string
	AccountID     string
	ProfileID     string
	Region        string
	ExcludeLevels []string
	ExcludeRules  []string
}

// Resolve merges partial sources, given in increasing precedence order,
// into one Resolved configuration. Scalar options take the value from the
// highest-precedence source that defines them. Set-valued options
// (exclude_levels, exclude_rules) are taken wholesale from the single
// highest-precedence source that defines them; sources never union.
//
// validLevels is the fixed risk-level set the service reports; passing it
// in keeps Resolve a pure function of its inputs.
func Resolve(validLevels []conformity.RiskLevel, sources ...Source) (Resolved, error) {
	r := Resolved{Region: DefaultRegion}

	for _, s := range sources {
		if s.APIKey != nil {
			r.APIKey = *s.APIKey
		}
		if s.AccountID != nil {
			r.AccountID = *s.AccountID
		}
		if s.ProfileID != nil {
			r.ProfileID = *s.ProfileID
		}
		if s.Region != nil && *s.Region != "" {
			r.Region = *s.Region
		}
		if s.ExcludeLevels != nil {
			r.ExcludeLevels = normalizeLevels(s.ExcludeLevels)
		}
		if s.ExcludeRules != nil {
			r.ExcludeRules = append([]string(nil), s.ExcludeRules...)
		}
	}

	if r.APIKey == "" {
		return Resolved{}, ErrMissingAPIKey
	}
	if r.AccountID != "" && r.ProfileID != "" {
		return Resolved{}, ErrAccountProfileConflict
	}
	for _, lvl := range r.ExcludeLevels {
		if !validLevel(validLevels, lvl) {
			return Resolved{}, &InvalidLevelError{Level: lvl}
		}
	}

	return r, nil
}

func normalizeLevels(levels []string) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = strings.ToUpper(strings.TrimSpace(l))
	}
	return out
}

func validLevel(valid []conformity.RiskLevel, s string) bool {
	for _, l := range valid {
		if string(l) == s {
			return true
		}
	}
	return false
}
