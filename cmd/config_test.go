package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yml"), []byte(`
llm:
  model: "llama-3.1-8b-instant"
cache:
  ttl: 30s
`), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("AGENT_MAX_TOOL_ROUNDS", "1")

	require.NoError(t, InitConfig())

	assert.Equal(t, "llama-3.1-8b-instant", viper.GetString("llm.model"))
	assert.Equal(t, 30*time.Second, viper.GetDuration("cache.ttl"))
	assert.Equal(t, 1, viper.GetInt("agent.max_tool_rounds"))
	assert.Equal(t, "https://api.groq.com/openai/v1", viper.GetString("llm.base_url"))
	assert.Equal(t, []string{"*"}, viper.GetStringSlice("server.cors_origins"))
}

func TestInitConfig_MissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Error(t, InitConfig())
	assert.Equal(t, "5001", viper.GetString("server.port"))
}
