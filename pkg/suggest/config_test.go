package suggest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	data := `
model: "gpt-4o-mini"
prompt_template: "prompts/coder.tmpl"
timeout: "90s"
demo_fallback: true
fallback_records:
  - extract: "HTA"
    code: "I10"
    description: "Hypertension"
`

	cfg, err := LoadConfigFromReader(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", cfg.Model)
	require.Equal(t, "prompts/coder.tmpl", cfg.PromptTemplate)
	require.Equal(t, 90*time.Second, cfg.Timeout)
	require.True(t, cfg.DemoFallback)
	require.Len(t, cfg.FallbackRecords, 1)
	require.Equal(t, "I10", cfg.FallbackRecords[0].Code)
}

func TestLoadConfigTimeoutDefault(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`model: "gpt-4o-mini"`))
	require.NoError(t, err)
	require.Equal(t, defaultAnalyzeTimeout, cfg.Timeout)
}

func TestLoadConfigTimeoutEnvOverride(t *testing.T) {
	t.Setenv(envTimeout, "15s")
	cfg, err := LoadConfigFromReader(strings.NewReader(`timeout: "90s"`))
	require.NoError(t, err)
	require.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader(`timeout: "soon"`))
	require.Error(t, err)

	_, err = LoadConfigFromReader(strings.NewReader(`timeout: "-5s"`))
	require.Error(t, err)
}

func TestLoadConfigResolvesRelativePromptTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prompts"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "prompts", "coder.tmpl"),
		[]byte("Code this note:\n{{.Note}}\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "suggest.yaml"),
		[]byte("prompt_template: \"prompts/coder.tmpl\"\n"), 0o644))

	// The working directory is the package dir, not dir; the template must
	// still be found next to the config file.
	cfg, err := LoadConfig(filepath.Join(dir, "suggest.yaml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "prompts", "coder.tmpl"), cfg.PromptTemplate)

	s, err := NewSuggester(cfg, &fakeChatClient{content: `[{"code":"I10"}]`})
	require.NoError(t, err)
	require.NotEmpty(t, s.PromptDigest())
}

func TestLoadConfigKeepsAbsolutePromptTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "coder.tmpl")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{.Note}}"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "suggest.yaml"),
		[]byte("prompt_template: \""+tmpl+"\"\n"), 0o644))

	cfg, err := LoadConfig(filepath.Join(dir, "suggest.yaml"))
	require.NoError(t, err)
	require.Equal(t, tmpl, cfg.PromptTemplate)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Model:           "gpt-4o-mini",
		Timeout:         time.Minute,
		FallbackRecords: []Record{{Code: "I10"}},
	}
	cp := cfg.Clone()
	cp.FallbackRecords[0].Code = "E11"
	require.Equal(t, "I10", cfg.FallbackRecords[0].Code)
}
