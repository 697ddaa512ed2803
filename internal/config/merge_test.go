package config

import (
	"errors"
	"testing"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

func strptr(s string) *string { return &s }

func TestResolve_ScalarPrecedence(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels,
		Source{Name: "user", APIKey: strptr("from-user"), Region: strptr("us-east-1")},
		Source{Name: "project", Region: strptr("us-west-2")},
		Source{Name: "env", APIKey: strptr("from-env")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.APIKey != "from-env" {
		t.Fatalf("expected env api key to win, got %q", r.APIKey)
	}
	if r.Region != "us-west-2" {
		t.Fatalf("expected project region to win, got %q", r.Region)
	}
}

func TestResolve_FlagsOverrideEverything(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels,
		Source{Name: "project", AccountID: strptr("file-acct"), Region: strptr("us-west-2")},
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", AccountID: strptr("flag-acct"), Region: strptr("ap-southeast-2")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.AccountID != "flag-acct" {
		t.Fatalf("expected flag account to win, got %q", r.AccountID)
	}
	if r.Region != "ap-southeast-2" {
		t.Fatalf("expected flag region to win, got %q", r.Region)
	}
}

func TestResolve_SetValuedReplaceNotUnion(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels,
		Source{Name: "project", ExcludeLevels: []string{"LOW", "MEDIUM"}, ExcludeRules: []string{"S3-020", "EC2-001"}},
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", ExcludeRules: []string{"RDS-017"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Flags defined exclude_rules, so the file value is ignored entirely.
	if len(r.ExcludeRules) != 1 || r.ExcludeRules[0] != "RDS-017" {
		t.Fatalf("expected flag rules to replace file rules, got %v", r.ExcludeRules)
	}
	// Flags did not define exclude_levels, so the file value stands.
	if len(r.ExcludeLevels) != 2 {
		t.Fatalf("expected file levels to stand, got %v", r.ExcludeLevels)
	}
}

func TestResolve_EmptySetOverrides(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels,
		Source{Name: "project", ExcludeRules: []string{"S3-020"}},
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", ExcludeRules: []string{}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.ExcludeRules) != 0 {
		t.Fatalf("expected explicit empty set to clear file rules, got %v", r.ExcludeRules)
	}
}

func TestResolve_MissingAPIKey(t *testing.T) {
	_, err := Resolve(conformity.RiskLevels,
		Source{Name: "project", Region: strptr("us-west-2")},
	)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestResolve_InvalidLevel(t *testing.T) {
	_, err := Resolve(conformity.RiskLevels,
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", ExcludeLevels: []string{"CRITICAL"}},
	)
	var lvlErr *InvalidLevelError
	if !errors.As(err, &lvlErr) {
		t.Fatalf("expected InvalidLevelError, got %v", err)
	}
	if lvlErr.Level != "CRITICAL" {
		t.Fatalf("expected offending level CRITICAL, got %q", lvlErr.Level)
	}
}

func TestResolve_LevelsCaseNormalized(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels,
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", ExcludeLevels: []string{"low", " Very_High "}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ExcludeLevels[0] != "LOW" || r.ExcludeLevels[1] != "VERY_HIGH" {
		t.Fatalf("expected normalized levels, got %v", r.ExcludeLevels)
	}
}

func TestResolve_DefaultRegion(t *testing.T) {
	r, err := Resolve(conformity.RiskLevels, Source{Name: "env", APIKey: strptr("key")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Region != DefaultRegion {
		t.Fatalf("expected default region %s, got %q", DefaultRegion, r.Region)
	}
}

func TestResolve_AccountProfileConflict(t *testing.T) {
	_, err := Resolve(conformity.RiskLevels,
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", AccountID: strptr("acct"), ProfileID: strptr("prof")},
	)
	if !errors.Is(err, ErrAccountProfileConflict) {
		t.Fatalf("expected ErrAccountProfileConflict, got %v", err)
	}
}

func TestResolve_ConflictAcrossSources(t *testing.T) {
	// account_id from the file plus profile_id from flags still conflicts.
	_, err := Resolve(conformity.RiskLevels,
		Source{Name: "project", AccountID: strptr("acct")},
		Source{Name: "env", APIKey: strptr("key")},
		Source{Name: "flags", ProfileID: strptr("prof")},
	)
	if !errors.Is(err, ErrAccountProfileConflict) {
		t.Fatalf("expected ErrAccountProfileConflict, got %v", err)
	}
}
