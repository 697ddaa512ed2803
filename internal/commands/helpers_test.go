package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cloudar/cloudconformity-scanner/internal/config"
	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

func TestEnhanceError_Hints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing-api-key", config.ErrMissingAPIKey, config.EnvAPIKey},
		{"account-profile", config.ErrAccountProfileConflict, "not both"},
		{"auth", conformity.ErrAuthenticationFailed, "API key"},
		{"unavailable", conformity.ErrServiceUnavailable, "endpoint"},
		{"timeout", conformity.ErrTimeout, "--timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enhanceError("do thing", tt.err)
			if !errors.Is(got, tt.err) {
				t.Fatalf("wrapped error lost its cause: %v", got)
			}
			if !strings.Contains(got.Error(), "hint:") || !strings.Contains(got.Error(), tt.want) {
				t.Fatalf("expected hint containing %q, got %q", tt.want, got.Error())
			}
		})
	}
}

func TestEnhanceError_NoHintForUnknown(t *testing.T) {
	cause := fmt.Errorf("something else")
	got := enhanceError("do thing", cause)
	if !errors.Is(got, cause) {
		t.Fatalf("wrapped error lost its cause: %v", got)
	}
	if strings.Contains(got.Error(), "hint:") {
		t.Fatalf("unexpected hint: %q", got.Error())
	}
}
