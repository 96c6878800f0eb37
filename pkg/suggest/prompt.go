package suggest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// defaultPrompt is the built-in system prompt used when no template file is
// configured. It pins the response contract the parser expects.
const defaultPrompt = `You are a clinical coding assistant. The user message contains free-text
clinical notes. Identify every diagnosis, comorbidity or relevant clinical
finding and map it to its diagnostic code.

Respond with a JSON array only. Each element is an object with the keys:
  "extract": the exact excerpt of the note supporting the code
  "code": the diagnostic code
  "description": a short human-readable label
  "url": an optional reference link

Do not add commentary outside the JSON array.`

// PromptTemplate renders the system prompt for the coding agent from a
// text/template on disk. The template receives the note via {{.Note}} and
// may ignore it when the note travels as a separate user message.
type PromptTemplate struct {
	path string

	mu     sync.RWMutex
	tmpl   *template.Template
	digest string
}

type promptData struct {
	Note string
}

// NewPromptTemplate parses the template file at path.
func NewPromptTemplate(path string) (*PromptTemplate, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("suggest: prompt template path is empty")
	}
	t := &PromptTemplate{path: path}
	if err := t.reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Render produces the system prompt for the given note.
func (t *PromptTemplate) Render(note string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.tmpl == nil {
		return "", fmt.Errorf("suggest: prompt template %q not parsed", t.path)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, promptData{Note: note}); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.path, err)
	}
	return buf.String(), nil
}

// Reload reparses the template from disk, picking up edits without a restart.
func (t *PromptTemplate) Reload() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reload()
}

func (t *PromptTemplate) reload() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read prompt template %q: %w", t.path, err)
	}
	t.digest = DigestString(string(data))

	tmpl, err := template.New(filepath.Base(t.path)).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse prompt template %q: %w", t.path, err)
	}
	t.tmpl = tmpl
	return nil
}

// Digest returns the sha256 hash of the template content, used to correlate
// journal entries with the prompt revision that produced them.
func (t *PromptTemplate) Digest() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.digest
}

// DigestString returns the sha256 digest of s.
func DigestString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
