package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cloudar/cloudconformity-scanner/internal/config"
	"github.com/cloudar/cloudconformity-scanner/internal/conformity"
	"github.com/cloudar/cloudconformity-scanner/internal/filter"
	"github.com/cloudar/cloudconformity-scanner/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTemplate = "template.yaml"
	scanConcurrency = 4
)

var scanFlags struct {
	configPath    string
	accountID     string
	profileID     string
	region        string
	excludeLevels []string
	excludeRules  []string
	format        string
	outputFile    string
	timeout       time.Duration
}

func init() {
	rootCmd.Flags().StringVar(&scanFlags.configPath, "config", "", "Project config file path (default: "+config.ProjectConfigFile+")")
	rootCmd.Flags().StringVar(&scanFlags.accountID, "account-id", "", "Conformity account whose rule settings apply")
	rootCmd.Flags().StringVar(&scanFlags.profileID, "profile-id", "", "Conformity profile whose rule settings apply")
	rootCmd.Flags().StringVar(&scanFlags.region, "region", "", "Conformity API region (default: "+config.DefaultRegion+")")
	rootCmd.Flags().StringSliceVar(&scanFlags.excludeLevels, "exclude-levels", nil, "Comma-separated risk levels to suppress")
	rootCmd.Flags().StringSliceVar(&scanFlags.excludeRules, "exclude-rules", nil, "Comma-separated rule IDs to suppress")
	rootCmd.Flags().StringVar(&scanFlags.format, "format", "text", "Output format: text, json, sarif")
	rootCmd.Flags().StringVarP(&scanFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().DurationVar(&scanFlags.timeout, "timeout", 30*time.Second, "Per-request timeout for the scan API")
}

func runScan(cmd *cobra.Command, args []string) error {
	templates := args
	if len(templates) == 0 {
		templates = []string{defaultTemplate}
	}

	resolved, err := resolveConfig(cmd)
	if err != nil {
		return enhanceError("resolve configuration", err)
	}

	opts := []conformity.Option{conformity.WithTimeout(scanFlags.timeout)}
	if resolved.AccountID != "" {
		opts = append(opts, conformity.WithAccountID(resolved.AccountID))
	}
	if resolved.ProfileID != "" {
		opts = append(opts, conformity.WithProfileID(resolved.ProfileID))
	}
	client := conformity.NewClient(resolved.APIKey, resolved.Region, opts...)

	results := make([]conformity.ScanResult, len(templates))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(scanConcurrency)

	for i, path := range templates {
		i, path := i, path
		g.Go(func() error {
			contents, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read template %s: %w", path, err)
			}

			slog.Debug("Scanning template", "template", path, "region", resolved.Region)
			findings, err := client.Scan(ctx, string(contents))
			if err != nil {
				return enhanceError(fmt.Sprintf("scan %s", path), err)
			}

			results[i] = conformity.ScanResult{
				Template: path,
				Findings: filter.Exclude(findings, resolved.ExcludeLevels, resolved.ExcludeRules),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data := report.Data{
		Tool:      "cloudconformity-scanner",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Results:   results,
	}
	reporter, err := selectReporter(scanFlags.format, scanFlags.outputFile)
	if err != nil {
		return err
	}
	if err := reporter.Generate(data); err != nil {
		return err
	}

	if data.HasFailures() {
		return ErrViolationsFound
	}
	return nil
}

// resolveConfig gathers all configuration sources in increasing
// precedence order and merges them.
func resolveConfig(cmd *cobra.Command) (config.Resolved, error) {
	user, err := config.FromUserFile(config.UserConfigPath())
	if err != nil {
		return config.Resolved{}, err
	}

	projectPath := scanFlags.configPath
	explicit := projectPath != ""
	if !explicit {
		projectPath = config.ProjectConfigFile
	}
	project, err := config.FromProjectFile(projectPath, explicit)
	if err != nil {
		return config.Resolved{}, err
	}

	env := config.FromEnv(os.LookupEnv)

	return config.Resolve(conformity.RiskLevels, user, project, env, flagSource(cmd))
}

// flagSource turns explicitly set command-line flags into the
// highest-precedence configuration source. Flags left at their default
// stay unset so lower-precedence sources can supply them.
func flagSource(cmd *cobra.Command) config.Source {
	src := config.Source{Name: "flags"}
	flags := cmd.Flags()

	if flags.Changed("account-id") {
		v := scanFlags.accountID
		src.AccountID = &v
	}
	if flags.Changed("profile-id") {
		v := scanFlags.profileID
		src.ProfileID = &v
	}
	if flags.Changed("region") {
		v := scanFlags.region
		src.Region = &v
	}
	if flags.Changed("exclude-levels") {
		src.ExcludeLevels = scanFlags.excludeLevels
	}
	if flags.Changed("exclude-rules") {
		src.ExcludeRules = scanFlags.excludeRules
	}
	return src
}

func selectReporter(format, outputFile string) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}
