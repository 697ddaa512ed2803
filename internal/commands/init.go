package commands

import (
	"fmt"
	"os"

	"github.com/cloudar/cloudconformity-scanner/internal/config"
	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample project config file",
	Long:  `Creates a commented ` + config.ProjectConfigFile + ` in the working directory.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite an existing config file")
}

func runInit(_ *cobra.Command, _ []string) error {
	path := config.ProjectConfigFile

	if !initFlags.force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Set the %s environment variable (or add api_key to %s)\n",
		config.EnvAPIKey, config.UserConfigPath())
	fmt.Printf("  2. Edit %s to suppress findings you accept\n", path)
	fmt.Println("  3. Run: cloudconformity-scanner template.yaml")
	return nil
}

const sampleConfig = `# cloudconformity-scanner project configuration

# Conformity account or profile whose rule settings apply to the scan.
# At most one of the two may be set.
# account_id: ""
# profile_id: ""

# Conformity API region (default: eu-west-1)
# region: eu-west-1

# Findings to suppress. Levels: EXTREME, VERY_HIGH, HIGH, MEDIUM, LOW.
# exclude_levels:
#   - LOW
# exclude_rules:
#   - S3-020
`
