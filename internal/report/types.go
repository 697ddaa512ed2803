package report

import (
	"io"
	"time"

	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
)

// Data is the material a reporter renders: one ScanResult per scanned
// template, already filtered.
type Data struct {
	Tool      string
	Version   string
	Timestamp time.Time
	Results   []conformity.ScanResult
}

// HasFailures reports whether any template still has findings.
func (d Data) HasFailures() bool {
	for _, r := range d.Results {
		if r.HasFailures() {
			return true
		}
	}
	return false
}

// Reporter renders scan results to its writer.
type Reporter interface {
	Generate(data Data) error
}

// TextReporter writes human-readable output, findings grouped by severity.
type TextReporter struct {
	Writer io.Writer
}

// JSONReporter writes a machine-readable envelope.
type JSONReporter struct {
	Writer io.Writer
}

// SARIFReporter writes SARIF v2.1.0 output.
type SARIFReporter struct {
	Writer io.Writer
}
