package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/plancad/internal/llm"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, Load())

	c := C()
	assert.Equal(t, filepath.Join(home, ".plancad", "plancad.db"), c.Storage.Path())
	assert.Equal(t, ":8080", c.Server.Address())
	assert.Equal(t, 5*time.Second, c.Script.Timeout())
	assert.Equal(t, uint64(1_000_000), c.Script.MaxSteps())
	assert.Equal(t, "mm", c.Script.DefaultUnits())
	assert.Equal(t, "warn", c.Logger.Level())
	assert.False(t, c.Logger.AsJSON())
	assert.False(t, c.LLM.Enabled)
	assert.Equal(t, "http://localhost:11434", c.LLM.Endpoint)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLANCAD_DB", "/tmp/plans.db")
	t.Setenv("PLANCAD_SCRIPT_TIMEOUT", "250ms")
	t.Setenv("PLANCAD_DEFAULT_UNITS", "cm")
	t.Setenv("PLANCAD_LOG_JSON", "true")
	t.Setenv("PLANCAD_LLM_ENABLED", "true")
	t.Setenv("PLANCAD_LLM_DRAFT_TIMEOUT_MS", "1234")

	require.NoError(t, Load())

	c := C()
	assert.Equal(t, "/tmp/plans.db", c.Storage.Path())
	assert.Equal(t, 250*time.Millisecond, c.Script.Timeout())
	assert.Equal(t, "cm", c.Script.DefaultUnits())
	assert.True(t, c.Logger.AsJSON())
	assert.True(t, c.LLM.Enabled)
	assert.Equal(t, 1234, c.LLM.TaskTimeout(llm.TaskScriptDraft))
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"PLANCAD_DEFAULT_UNITS":    "ft",
		"PLANCAD_SCRIPT_TIMEOUT":   "soon",
		"PLANCAD_SCRIPT_MAX_STEPS": "-1",
		"PLANCAD_LLM_TIMEOUT_MS":   "0",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			assert.Error(t, Load())
		})
	}
}

func TestLoad_DotenvWhenLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLANCAD_HTTP_ADDR=127.0.0.1:9999\n"), 0o600))

	t.Setenv("PLANCAD_ENV", "local")
	t.Setenv("PLANCAD_HTTP_ADDR", "")
	os.Unsetenv("PLANCAD_HTTP_ADDR")

	require.NoError(t, Load(path))
	t.Cleanup(func() { os.Unsetenv("PLANCAD_HTTP_ADDR") })
	assert.Equal(t, "127.0.0.1:9999", C().Server.Address())
}
