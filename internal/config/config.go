package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig is the content of mdsource.yaml.
type ProjectConfig struct {
	// Registry is the path of a registry YAML replacing the built-in one.
	// Relative paths are taken from the project directory.
	Registry           string   `yaml:"registry,omitempty"`
	IgnoreFile         string   `yaml:"ignore_file,omitempty"`
	ProjectMarker      string   `yaml:"project_marker,omitempty"`
	PackageDirectories []string `yaml:"package_directories,omitempty"`

	dir string
}

const ConfigFileName = "mdsource.yaml"

// Environment variables overriding the file.
const (
	EnvRegistry      = "MDSOURCE_REGISTRY"
	EnvIgnoreFile    = "MDSOURCE_IGNORE_FILE"
	EnvProjectMarker = "MDSOURCE_PROJECT_MARKER"
)

func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mdsource.ErrInvalidConfig, configPath, err)
	}
	cfg.dir = sourcePath
	return &cfg, nil
}

// LoadOrDefault is Load, returning an empty config when the file is absent.
func LoadOrDefault(sourcePath string) (*ProjectConfig, error) {
	cfg, err := Load(sourcePath)
	if errors.Is(err, ErrConfigNotFound) {
		return &ProjectConfig{dir: sourcePath}, nil
	}
	return cfg, err
}

// ApplyEnv overrides fields from the MDSOURCE_* environment variables that
// are set and non-empty.
func (c *ProjectConfig) ApplyEnv() {
	if v := os.Getenv(EnvRegistry); v != "" {
		c.Registry = v
	}
	if v := os.Getenv(EnvIgnoreFile); v != "" {
		c.IgnoreFile = v
	}
	if v := os.Getenv(EnvProjectMarker); v != "" {
		c.ProjectMarker = v
	}
}

// RegistryPath returns Registry resolved against the project directory.
func (c *ProjectConfig) RegistryPath() string {
	if c.Registry == "" || filepath.IsAbs(c.Registry) {
		return c.Registry
	}
	return filepath.Join(c.dir, c.Registry)
}

// Validate reports every problem found, wrapped in mdsource.ErrInvalidConfig.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if strings.ContainsAny(c.IgnoreFile, `/\`) {
		errs = append(errs, fmt.Errorf("ignore_file must be a file name, got %q", c.IgnoreFile))
	}
	if strings.ContainsAny(c.ProjectMarker, `/\`) {
		errs = append(errs, fmt.Errorf("project_marker must be a file name, got %q", c.ProjectMarker))
	}
	seen := make(map[string]struct{}, len(c.PackageDirectories))
	for _, d := range c.PackageDirectories {
		switch {
		case strings.TrimSpace(d) == "":
			errs = append(errs, errors.New("package_directories contains an empty path"))
		case filepath.IsAbs(d):
			errs = append(errs, fmt.Errorf("package directory %q must be relative to the project", d))
		default:
			if _, dup := seen[d]; dup {
				errs = append(errs, fmt.Errorf("package directory %q is listed twice", d))
			}
			seen[d] = struct{}{}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", mdsource.ErrInvalidConfig, errors.Join(errs...))
}

// Roots returns the paths to resolve: the package directories joined to the
// project directory, or the project directory itself.
func (c *ProjectConfig) Roots() []string {
	if len(c.PackageDirectories) == 0 {
		return []string{c.dir}
	}
	out := make([]string, 0, len(c.PackageDirectories))
	for _, d := range c.PackageDirectories {
		out = append(out, filepath.Join(c.dir, filepath.FromSlash(d)))
	}
	return out
}
