package commands

import (
	"errors"
	"fmt"

	"github.com/cloudar/cloudconformity-scanner/internal/config"
	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// enhanceError wraps an error with context and a suggestion for common
// failures.
func enhanceError(action string, err error) error {
	var hint string
	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		hint = fmt.Sprintf("Set the %s environment variable or add 'api_key: ...' to %s",
			config.EnvAPIKey, config.UserConfigPath())
	case errors.Is(err, config.ErrAccountProfileConflict):
		hint = "Use either --account-id or --profile-id, not both"
	case errors.Is(err, conformity.ErrAuthenticationFailed):
		hint = "Check that the API key is valid for this Conformity organisation"
	case errors.Is(err, conformity.ErrServiceUnavailable):
		hint = "The Conformity endpoint could not be reached; verify the region name and network access"
	case errors.Is(err, conformity.ErrTimeout):
		hint = "Increase --timeout or retry later"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}
