package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// Fatal configuration errors. Callers match with errors.Is.
var (
	ErrMissingAPIKey          = errors.New("no api key found")
	ErrAccountProfileConflict = errors.New("account_id and profile_id cannot both be set")
)

// SourceUnreadableError marks a configuration source that exists but
// could not be read or parsed.
type SourceUnreadableError struct {
	Path string
	Err  error
}

func (e *SourceUnreadableError) Error() string {
	return fmt.Sprintf("unreadable config file %s: %v", e.Path, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error {
	return e.Err
}

// InvalidLevelError marks an exclude_levels entry outside the known
// risk-level set.
type InvalidLevelError struct {
	Level string
}

func (e *InvalidLevelError) Error() string {
	valid := make([]string, len(conformity.RiskLevels))
	for i, l := range conformity.RiskLevels {
		valid[i] = string(l)
	}
	return fmt.Sprintf("invalid risk level %q in exclude_levels (valid: %s)",
		e.Level, strings.Join(valid, ", "))
}
