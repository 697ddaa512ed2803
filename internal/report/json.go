package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

type jsonEnvelope struct {
	Tool        string                  `json:"tool"`
	Version     string                  `json:"version"`
	Timestamp   time.Time               `json:"timestamp"`
	Results     []conformity.ScanResult `json:"results"`
	HasFailures bool                    `json:"has_failures"`
}

// Generate writes the scan results as an indented JSON envelope.
func (r *JSONReporter) Generate(data Data) error {
	env := jsonEnvelope{
		Tool:        data.Tool,
		Version:     data.Version,
		Timestamp:   data.Timestamp,
		Results:     data.Results,
		HasFailures: data.HasFailures(),
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
