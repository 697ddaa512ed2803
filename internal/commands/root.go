package commands

import (
	"context"
	"errors"

	"github.com/cloudar/cloudconformity-scanner/internal/logging"
	"github.com/spf13/cobra"
)

// Exit codes for CI integration.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// ErrViolationsFound signals that the scan ran to completion and found
// policy violations. The report has already been written when this is
// returned, so callers map it to ExitViolations without printing it.
var ErrViolationsFound = errors.New("policy violations found")

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "cloudconformity-scanner [template_file...]",
	Short: "Scan CloudFormation templates with the Conformity template scanner",
	Long: `cloudconformity-scanner submits CloudFormation templates to the Cloud
Conformity template-scanner API and reports the findings. Findings can be
suppressed by risk level or rule ID; the exit code distinguishes a clean
scan (0) from policy violations (1) and execution errors (2).

The API key is taken from the --config file chain or the
CLOUDCONFORMITY_API_KEY environment variable.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(ctx context.Context, v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
