package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vars = []string{
	"ABSORB_ADDR", "ABSORB_SAVE_DIR", "ABSORB_TICK_HZ",
	"ABSORB_BROADCAST_HZ", "ABSORB_SEED", "ABSORB_LOG_LEVEL",
}

// clearEnv unsets every ABSORB_ variable; t.Setenv restores them after.
func clearEnv(t *testing.T) {
	for _, v := range vars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ABSORB_ADDR", "127.0.0.1:9000")
	t.Setenv("ABSORB_TICK_HZ", "120")
	t.Setenv("ABSORB_BROADCAST_HZ", "40")
	t.Setenv("ABSORB_SEED", "7")
	t.Setenv("ABSORB_LOG_LEVEL", "debug")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", c.Addr)
	assert.Equal(t, "saves", c.SaveDir)
	assert.Equal(t, 120, c.TickHz)
	assert.Equal(t, 40, c.BroadcastHz)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ABSORB_ADDR", ":7000")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ABSORB_SAVE_DIR=/tmp/absorb\nABSORB_ADDR=:1\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/absorb", c.SaveDir)
	assert.Equal(t, ":7000", c.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, env := range map[string][2]string{
		"tick not a number":  {"ABSORB_TICK_HZ", "fast"},
		"tick zero":          {"ABSORB_TICK_HZ", "0"},
		"broadcast too fast": {"ABSORB_BROADCAST_HZ", "500"},
		"seed negative":      {"ABSORB_SEED", "-1"},
		"level unknown":      {"ABSORB_LOG_LEVEL", "chatty"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env[0], env[1])
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
