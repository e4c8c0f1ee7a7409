package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".availspect.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".availspect.yml"

	envPrefix = "AVAILSPECT_"
)

// FileConfig represents values loaded from an .availspect.yaml file or from
// AVAILSPECT_* environment variables. Every field is optional; flags always
// win over file and environment values.
type FileConfig struct {
	Cluster    string `yaml:"cluster"`
	SreportBin string `yaml:"sreport_bin"`
	Timeout    string `yaml:"timeout"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
}

// Normalize trims whitespace from every field.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.Cluster = strings.TrimSpace(fc.Cluster)
	fc.SreportBin = strings.TrimSpace(fc.SreportBin)
	fc.Timeout = strings.TrimSpace(fc.Timeout)
	fc.Format = strings.TrimSpace(fc.Format)
	fc.Output = strings.TrimSpace(fc.Output)
}

// ApplyTo copies every non-empty field into cfg, except fields listed in
// skip (flag-set values the caller wants preserved).
func (fc *FileConfig) ApplyTo(cfg *Config, skip map[string]bool) error {
	if fc == nil || cfg == nil {
		return nil
	}
	if fc.Cluster != "" && !skip["cluster"] {
		cfg.Cluster = fc.Cluster
	}
	if fc.SreportBin != "" && !skip["sreport-bin"] {
		cfg.SreportBin = fc.SreportBin
	}
	if fc.Format != "" && !skip["format"] {
		cfg.Format = fc.Format
	}
	if fc.Output != "" && !skip["output"] {
		cfg.OutputPath = fc.Output
	}
	if fc.Timeout != "" && !skip["timeout"] {
		timeout, err := ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config: %w", err)
		}
		cfg.Timeout = timeout
	}
	return nil
}

// AutoLoad merges file and environment configuration: the first existing
// config file (working directory, then home) overlaid by AVAILSPECT_*
// variables, which themselves may come from a .env file in the working
// directory.
func AutoLoad() (*FileConfig, error) {
	fc, _, err := AutoLoadFile()
	if err != nil {
		return nil, err
	}
	if fc == nil {
		fc = &FileConfig{}
	}
	fc.applyEnv()
	fc.Normalize()
	return fc, nil
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}
	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}
		fc, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return fc, candidate, nil
	}
	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	fc.Normalize()
	return fc, nil
}

// applyEnv overlays AVAILSPECT_* environment variables onto fc. A .env file
// in the working directory is loaded first when present; real environment
// variables take precedence over .env entries.
func (fc *FileConfig) applyEnv() {
	_ = godotenv.Load()

	overlay := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
			*dst = v
		}
	}
	overlay(&fc.Cluster, "CLUSTER")
	overlay(&fc.SreportBin, "SREPORT_BIN")
	overlay(&fc.Timeout, "TIMEOUT")
	overlay(&fc.Format, "FORMAT")
	overlay(&fc.Output, "OUTPUT")
}
