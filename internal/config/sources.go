package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey is the environment variable holding the Conformity API key.
	EnvAPIKey = "CLOUDCONFORMITY_API_KEY"

	// ProjectConfigFile is the default project-level config file name.
	ProjectConfigFile = ".cloudconformity-scanner-config.yaml"
)

// Source is one partial configuration reading. Nil fields are unset;
// the merger takes the highest-precedence set value per option.
type Source struct {
	Name          string
	APIKey        *string
	AccountID     *string
	ProfileID     *string
	Region        *string
	ExcludeLevels []string
	ExcludeRules  []string
}

// UserConfigPath returns the fixed user-level config location,
// ~/.cloudconformity-scanner/config.yaml.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cloudconformity-scanner", "config.yaml")
}

type userFile struct {
	APIKey *string `yaml:"api_key"`
}

type projectFile struct {
	AccountID     *string  `yaml:"account_id"`
	ProfileID     *string  `yaml:"profile_id"`
	Region        *string  `yaml:"region"`
	ExcludeLevels []string `yaml:"exclude_levels"`
	ExcludeRules  []string `yaml:"exclude_rules"`
}

// FromUserFile reads the user-level config file. An absent file yields an
// empty source; a file that exists but cannot be parsed is a
// SourceUnreadableError.
func FromUserFile(path string) (Source, error) {
	src := Source{Name: "user config"}
	if path == "" {
		return src, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return src, nil
		}
		return Source{}, &SourceUnreadableError{Path: path, Err: err}
	}

	var parsed userFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Source{}, &SourceUnreadableError{Path: path, Err: err}
	}
	src.APIKey = parsed.APIKey
	return src, nil
}

// FromProjectFile reads the project-level config file. When explicit is
// true the path was named on the command line, so a missing file is an
// error rather than an empty source.
func FromProjectFile(path string, explicit bool) (Source, error) {
	src := Source{Name: "project config"}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return src, nil
		}
		return Source{}, &SourceUnreadableError{Path: path, Err: err}
	}

	var parsed projectFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Source{}, &SourceUnreadableError{Path: path, Err: err}
	}
	src.AccountID = parsed.AccountID
	src.ProfileID = parsed.ProfileID
	src.Region = parsed.Region
	src.ExcludeLevels = parsed.ExcludeLevels
	src.ExcludeRules = parsed.ExcludeRules
	return src, nil
}

// FromEnv reads the environment source. Only the API key comes from the
// environment; lookup is injected so tests stay hermetic.
func FromEnv(lookup func(string) (string, bool)) Source {
	src := Source{Name: fmt.Sprintf("env %s", EnvAPIKey)}
	if v, ok := lookup(EnvAPIKey); ok {
		src.APIKey = &v
	}
	return src
}
