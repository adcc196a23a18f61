package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirLinuxXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "gridlock"), dir)
}

func TestDefaultConfigDirLinuxHomeFallback(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG resolution is linux-only")
	}
	t.Setenv("XDG_CONFIG_HOME", "")

	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "/home/solver", nil }
	t.Cleanup(func() { platformDir.homeDir = orig })

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/solver", ".config", "gridlock"), dir)
}

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/env-config")

	dir, err := ResolveConfigDir("/tmp/flag-config")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag-config", dir, "flag wins over env")

	dir, err = ResolveConfigDir("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-config", dir, "env wins over platform default")
}

func TestResolveConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	dir, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.Contains(t, dir, "gridlock")
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/env-data")

	dir, err := ResolveDataDir("/tmp/flag-data", "/tmp/config-data")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag-data", dir, "flag wins over config and env")

	dir, err = ResolveDataDir("", "/tmp/config-data")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/config-data", dir, "config wins over env")

	dir, err = ResolveDataDir("", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-data", dir, "env wins over the CWD default")
}

func TestResolveDataDirDefault(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	dir, err := ResolveDataDir("", "")
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, DefaultDataDirName), dir)
}

func TestResolveDirsReturnAbsolutePaths(t *testing.T) {
	dir, err := ResolveConfigDir("relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))

	dir, err = ResolveDataDir("relative/data", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
}
