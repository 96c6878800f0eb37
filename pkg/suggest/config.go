package suggest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"clinicode-api/pkg/confkit"
)

const (
	// The agent call is abandoned after this much wall-clock time and
	// reported as a no-response failure.
	defaultAnalyzeTimeout = 120 * time.Second

	envTimeout = "CLINICODE_SUGGEST_TIMEOUT"
)

// Config holds pipeline settings for the suggestion service.
type Config struct {
	// Model overrides the agent client's default model when non-empty.
	Model string `yaml:"model"`
	// PromptTemplate is a path to a text/template; empty means the built-in
	// prompt.
	PromptTemplate string        `yaml:"prompt_template"`
	Timeout        time.Duration `yaml:"-"`
	// DemoFallback serves placeholder records when the agent path fails.
	// Demo scaffolding only; off unless explicitly enabled.
	DemoFallback    bool     `yaml:"demo_fallback"`
	FallbackRecords []Record `yaml:"fallback_records"`

	timeoutRaw string
}

// DefaultConfig returns a usable configuration when no suggest section is
// present: built-in prompt, default timeout, no fallback.
func DefaultConfig() *Config {
	return &Config{Timeout: defaultAnalyzeTimeout}
}

// LoadConfig reads pipeline configuration from disk. A relative
// prompt_template is resolved against the config file's directory, so the
// shipped layout works regardless of the process working directory.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suggest config: %w", err)
	}
	defer file.Close()

	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, err
	}
	if cfg.PromptTemplate != "" {
		cfg.PromptTemplate = confkit.ResolvePath(filepath.Dir(path), cfg.PromptTemplate)
	}
	return cfg, nil
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	var raw struct {
		Model           string   `yaml:"model"`
		PromptTemplate  string   `yaml:"prompt_template"`
		Timeout         string   `yaml:"timeout"`
		DemoFallback    bool     `yaml:"demo_fallback"`
		FallbackRecords []Record `yaml:"fallback_records"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read suggest config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal suggest config: %w", err)
	}

	cfg := &Config{
		Model:           raw.Model,
		PromptTemplate:  os.ExpandEnv(raw.PromptTemplate),
		DemoFallback:    raw.DemoFallback,
		FallbackRecords: raw.FallbackRecords,
		timeoutRaw:      raw.Timeout,
	}

	if env := os.Getenv(envTimeout); env != "" {
		cfg.timeoutRaw = env
	}
	if err := cfg.parseTimeout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("suggest config: timeout must be positive")
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	if c.FallbackRecords != nil {
		cp.FallbackRecords = make([]Record, len(c.FallbackRecords))
		copy(cp.FallbackRecords, c.FallbackRecords)
	}
	return &cp
}

func (c *Config) parseTimeout() error {
	if strings.TrimSpace(c.timeoutRaw) == "" {
		c.Timeout = defaultAnalyzeTimeout
		return nil
	}
	d, err := time.ParseDuration(c.timeoutRaw)
	if err != nil {
		return fmt.Errorf("suggest config: invalid timeout %q: %w", c.timeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("suggest config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}
