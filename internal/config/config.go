package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the bx configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the bx configuration directory
const ConfigDirName = ".bx"

// Config holds all bx configuration
type Config struct {
	Options OptionsConfig `yaml:"options"`
	Resolve ResolveConfig `yaml:"resolve"`
	Scan    ScanConfig    `yaml:"scan"`
}

// OptionsConfig holds the default pipeline stage toggles. Command-line
// flags override these per invocation.
type OptionsConfig struct {
	// RemoveDuplicates is a pointer so that an explicit `false` in the
	// config file is distinguishable from the field being absent; the
	// default is true.
	RemoveDuplicates        *bool `yaml:"remove_duplicates"`
	Sort                    bool  `yaml:"sort"`
	ResolveBarrelExports    bool  `yaml:"resolve_barrel_exports"`
	ConvertNamespaceToNamed bool  `yaml:"convert_namespace_to_named"`
}

// RemoveDuplicatesEnabled reports the duplicate-removal toggle, defaulting
// to true when unset.
func (o OptionsConfig) RemoveDuplicatesEnabled() bool {
	if o.RemoveDuplicates == nil {
		return true
	}
	return *o.RemoveDuplicates
}

// ResolveConfig holds configuration for source file resolution
type ResolveConfig struct {
	// Extensions is the candidate extension priority order for
	// extensionless import specifiers.
	Extensions []string `yaml:"extensions"`
}

// ScanConfig holds configuration for the scan command
type ScanConfig struct {
	// BarrelNames are the file basenames treated as barrel files.
	BarrelNames []string `yaml:"barrel_names"`
	// Exclude lists directory names skipped while walking.
	Exclude []string `yaml:"exclude"`
	// Workers bounds concurrent file processing (0 = number of CPUs).
	Workers int `yaml:"workers"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .bx/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		// No config dir found, return defaults
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .bx directory by walking up from startDir.
// Returns the path to the .bx directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .bx directory if it doesn't exist.
// Returns the path to the .bx directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	for _, ext := range cfg.Resolve.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with a dot",
				ErrInvalidConfig, ext)
		}
	}

	if len(cfg.Scan.BarrelNames) == 0 {
		return fmt.Errorf("%w: barrel_names must not be empty", ErrInvalidConfig)
	}

	if cfg.Scan.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d",
			ErrInvalidConfig, cfg.Scan.Workers)
	}

	return nil
}

// SaveDefault writes the default configuration to .bx/config.yaml in workDir.
// Creates the .bx directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	// Add header comment
	header := "# bx CLI configuration\n# See https://github.com/anthropics/bx for documentation\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
