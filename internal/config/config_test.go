package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
botname = "lynxbot"
owners = ["5511987654321"]
sudoers = ["4915112345678"]
cmdprefix = "!"
floodrate = 1.0
floodburst = 5
`)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "lynxbot", c.BotName)
	require.Equal(t, "!", c.CommandPrefix)
	require.Equal(t, 1.0, c.FloodRate)
	require.Equal(t, 5, c.FloodBurst)

	require.True(t, c.IsOwner("5511987654321"))
	require.False(t, c.IsOwner("4915112345678"))
	require.True(t, c.IsSudo("4915112345678"))
	require.True(t, c.IsSudo("5511987654321"), "owners are implicitly sudo")
	require.False(t, c.IsSudo("000"))
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `botname = "lynxbot"`)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ".", c.CommandPrefix)
	require.Equal(t, 0.5, c.FloodRate)
	require.Equal(t, 3, c.FloodBurst)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := writeConfig(t, `cmdprefix = "."`)

	c, err := LoadConfig(path)
	require.NoError(t, err)

	c.CommandPrefix = "#"
	require.NoError(t, c.SaveConfig())

	c2, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "#", c2.CommandPrefix)
}
