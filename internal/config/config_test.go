package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithSections(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()

	writeFile(t, dir, "agent.yaml", `
base_url: "https://example.com"
api_key: "test-key"
model: "gpt-4o-mini"
timeout: "30s"
`)
	writeFile(t, dir, "suggest.yaml", `
timeout: "120s"
`)
	main := writeFile(t, dir, "clinicode.yaml", `
Name: clinicode-api
Host: 0.0.0.0
Port: 8888
Env: dev
JournalDir: ""
Agent:
  File: agent.yaml
Suggest:
  File: suggest.yaml
`)

	cfg, err := Load(main)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.IsTestEnv())

	require.NotNil(t, cfg.Agent.Value)
	require.Equal(t, "test-key", cfg.Agent.Value.APIKey)
	require.Equal(t, 30*time.Second, cfg.Agent.Value.Timeout)

	require.NotNil(t, cfg.Suggest.Value)
	require.Equal(t, 120*time.Second, cfg.Suggest.Value.Timeout)

	require.Equal(t, dir, cfg.BaseDir())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	main := writeFile(t, dir, "clinicode.yaml", `
Name: clinicode-api
Host: 0.0.0.0
Port: 8888
`)

	cfg, err := Load(main)
	require.NoError(t, err)
	require.True(t, cfg.IsTestEnv())
	require.Equal(t, 60, cfg.TTL.Short)
	require.Equal(t, 3600, cfg.TTL.Long)
	require.Nil(t, cfg.Agent.Value)
}

func TestValidateRejectsBadEnv(t *testing.T) {
	cfg := &Config{Env: "staging", TTL: CacheTTL{Short: 1, Medium: 1, Long: 1}}
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsBadTTL(t *testing.T) {
	cfg := &Config{Env: "dev", TTL: CacheTTL{Short: 0, Medium: 1, Long: 1}}
	require.Error(t, cfg.Validate())
}
