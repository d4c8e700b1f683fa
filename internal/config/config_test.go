package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mdsource/pkg/mdsource"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `registry: registry.yaml
ignore_file: .mdignore
project_marker: project.json
package_directories:
  - force-app
  - unpackaged
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "registry.yaml", cfg.Registry)
	assert.Equal(t, ".mdignore", cfg.IgnoreFile)
	assert.Equal(t, "project.json", cfg.ProjectMarker)
	assert.Equal(t, []string{"force-app", "unpackaged"}, cfg.PackageDirectories)
	assert.Equal(t, filepath.Join(dir, "registry.yaml"), cfg.RegistryPath())
	assert.Equal(t, []string{filepath.Join(dir, "force-app"), filepath.Join(dir, "unpackaged")}, cfg.Roots())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, cfg.Roots())
	assert.Empty(t, cfg.RegistryPath())
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "{{invalid")

	cfg, err := Load(dir)
	assert.ErrorIs(t, err, mdsource.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := writeConfig(t, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Registry)
	assert.Empty(t, cfg.PackageDirectories)
}

func TestRegistryPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "types.yaml")
	cfg := &ProjectConfig{Registry: abs, dir: "project"}
	assert.Equal(t, abs, cfg.RegistryPath())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRegistry, "/etc/mdsource/registry.yaml")
	t.Setenv(EnvIgnoreFile, ".customignore")
	t.Setenv(EnvProjectMarker, "")

	cfg := &ProjectConfig{Registry: "local.yaml", IgnoreFile: ".forceignore", ProjectMarker: "sfdx-project.json"}
	cfg.ApplyEnv()

	assert.Equal(t, "/etc/mdsource/registry.yaml", cfg.Registry)
	assert.Equal(t, ".customignore", cfg.IgnoreFile)
	assert.Equal(t, "sfdx-project.json", cfg.ProjectMarker, "empty variables do not override")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProjectConfig
		wantErrs []string
	}{
		{
			name: "valid",
			cfg:  ProjectConfig{IgnoreFile: ".forceignore", PackageDirectories: []string{"force-app"}},
		},
		{
			name:     "ignore file with separator",
			cfg:      ProjectConfig{IgnoreFile: "config/.forceignore"},
			wantErrs: []string{"ignore_file must be a file name"},
		},
		{
			name:     "marker with separator",
			cfg:      ProjectConfig{ProjectMarker: `a\b.json`},
			wantErrs: []string{"project_marker must be a file name"},
		},
		{
			name:     "empty package directory",
			cfg:      ProjectConfig{PackageDirectories: []string{" "}},
			wantErrs: []string{"empty path"},
		},
		{
			name:     "duplicate package directory",
			cfg:      ProjectConfig{PackageDirectories: []string{"force-app", "force-app"}},
			wantErrs: []string{`"force-app" is listed twice`},
		},
		{
			name: "all problems reported",
			cfg: ProjectConfig{
				IgnoreFile:         "a/b",
				ProjectMarker:      "c/d",
				PackageDirectories: []string{"", "x", "x"},
			},
			wantErrs: []string{"ignore_file", "project_marker", "empty path", "listed twice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, mdsource.ErrInvalidConfig)
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestValidate_AbsolutePackageDirectory(t *testing.T) {
	cfg := ProjectConfig{PackageDirectories: []string{filepath.Join(t.TempDir(), "force-app")}}
	err := cfg.Validate()
	assert.ErrorIs(t, err, mdsource.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "must be relative")
}
