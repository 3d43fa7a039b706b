// Package config loads djinn settings from ~/.djinn/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFile     = "config.yaml"

	// Config keys
	cfgKeyOutputDir       = "output_dir"
	cfgKeyAppName         = "app_name"
	cfgKeyDomain          = "domain"
	cfgKeySize            = "size"
	cfgKeyAvgFields       = "avg_fields"
	cfgKeyRelationDensity = "relation_density"
	cfgKeyPython          = "python"
	cfgKeyVocabDir        = "vocab_dir"

	// Defaults applied when the file omits a key
	DefaultOutputDir       = "generated_projects"
	DefaultAppName         = "synthetic_app"
	DefaultSize            = "medium"
	DefaultAvgFields       = 5
	DefaultRelationDensity = 0.3
	DefaultPython          = "python3"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# djinn configuration

# Where generated projects are written. Relative paths resolve against the
# current working directory.
output_dir: generated_projects

# Defaults applied when flags are omitted.
app_name: synthetic_app
size: medium
avg_fields: 5
relation_density: 0.3

# Domain to draw vocabulary from; empty means pick one at random per run.
# domain: blog

# Interpreter used by 'djinn verify' and 'djinn doctor'.
python: python3

# Custom vocabulary packs (YAML files) are loaded from this directory.
# vocab_dir: ~/.djinn/vocab
`

// Config is the resolved djinn configuration.
type Config struct {
	OutputDir       string
	AppName         string
	Domain          string
	Size            string
	AvgFields       int
	RelationDensity float64
	Python          string
	VocabDir        string
}

// Dir returns the djinn configuration directory (~/.djinn).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".djinn"), nil
}

// FilePath returns the path of the config file, which may not exist yet.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the configuration from the default directory, creating the
// directory and a default config.yaml on first run.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads the configuration from the given directory.
func LoadFrom(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("failed to write default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyOutputDir, DefaultOutputDir)
	v.SetDefault(cfgKeyAppName, DefaultAppName)
	v.SetDefault(cfgKeySize, DefaultSize)
	v.SetDefault(cfgKeyAvgFields, DefaultAvgFields)
	v.SetDefault(cfgKeyRelationDensity, DefaultRelationDensity)
	v.SetDefault(cfgKeyPython, DefaultPython)
	v.SetDefault(cfgKeyVocabDir, filepath.Join(configDir, "vocab"))

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// A missing config.yaml is not an error; defaults apply.
	}

	cfg := &Config{
		OutputDir:       v.GetString(cfgKeyOutputDir),
		AppName:         v.GetString(cfgKeyAppName),
		Domain:          v.GetString(cfgKeyDomain),
		Size:            v.GetString(cfgKeySize),
		AvgFields:       v.GetInt(cfgKeyAvgFields),
		RelationDensity: v.GetFloat64(cfgKeyRelationDensity),
		Python:          v.GetString(cfgKeyPython),
		VocabDir:        v.GetString(cfgKeyVocabDir),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the ranges of the loaded values.
func (c *Config) Validate() error {
	switch c.Size {
	case "small", "medium", "large":
	default:
		return fmt.Errorf("unknown size %q (want small, medium, or large)", c.Size)
	}

	if c.AvgFields < 0 {
		return fmt.Errorf("avg_fields must be non-negative, got %d", c.AvgFields)
	}

	if c.RelationDensity < 0 || c.RelationDensity > 1 {
		return fmt.Errorf("relation_density must be in [0, 1], got %g", c.RelationDensity)
	}

	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFile)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
