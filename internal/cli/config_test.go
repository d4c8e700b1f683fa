package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mdsource/internal/config"
	"github.com/vvka-141/mdsource/pkg/mdsource"
)

func TestConfigCommand_ShowsEffectiveConfig(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"mdsource.yaml": "ignore_file: .forceignore\npackage_directories:\n  - force-app\n",
	})
	t.Setenv(config.EnvProjectMarker, "project.json")

	stdout, err := runCLI(t, "config", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "ignore_file: .forceignore")
	assert.Contains(t, stdout, "project_marker: project.json")
	assert.Contains(t, stdout, "- force-app")
	assert.NotContains(t, stdout, "registry:")
}

func TestConfigCommand_NoFile(t *testing.T) {
	t.Setenv(config.EnvRegistry, "")
	t.Setenv(config.EnvIgnoreFile, "")
	t.Setenv(config.EnvProjectMarker, "")

	stdout, err := runCLI(t, "config", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", stdout)
}

func TestConfigCommand_Invalid(t *testing.T) {
	dir := writeProject(t, map[string]string{"mdsource.yaml": "package_directories: [a, a]\n"})

	_, err := runCLI(t, "config", dir)
	require.Error(t, err)
	assert.Equal(t, mdsource.ExitConfigError, mdsource.ExitCodeForError(err))
}
