package conformity

import "testing"

func TestRiskLevelRank(t *testing.T) {
	for i := 1; i < len(RiskLevels); i++ {
		if RiskLevels[i-1].Rank() >= RiskLevels[i].Rank() {
			t.Fatalf("expected %s more severe than %s", RiskLevels[i-1], RiskLevels[i])
		}
	}
	if RiskLevel("UNKNOWN").Rank() != len(RiskLevels) {
		t.Fatalf("expected unknown level to sort last, got %d", RiskLevel("UNKNOWN").Rank())
	}
}

func TestValidRiskLevel(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"EXTREME", true},
		{"VERY_HIGH", true},
		{"HIGH", true},
		{"MEDIUM", true},
		{"LOW", true},
		{"CRITICAL", false},
		{"low", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidRiskLevel(tt.in); got != tt.want {
			t.Fatalf("ValidRiskLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScanResult_HasFailures(t *testing.T) {
	if (ScanResult{Template: "a.yaml"}).HasFailures() {
		t.Fatal("expected no failures for empty findings")
	}
	r := ScanResult{Template: "a.yaml", Findings: []Finding{{RuleID: "S3-020"}}}
	if !r.HasFailures() {
		t.Fatal("expected failures")
	}
}
