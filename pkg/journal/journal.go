package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SubmissionRecord captures one note submission end to end so failed agent
// payloads can be inspected manually. The note itself is never written, only
// its digest; the raw agent text is kept verbatim.
type SubmissionRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	SubmissionID string    `json:"submission_id"`
	NoteDigest   string    `json:"note_digest"`
	PromptDigest string    `json:"prompt_digest,omitempty"`
	RawResponse  string    `json:"raw_response,omitempty"`
	RecordCount  int       `json:"record_count"`
	LatencyMS    int64     `json:"latency_ms"`
	Success      bool      `json:"success"`
	FailureKind  string    `json:"failure_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Writer persists submission records to a directory as JSON files.
type Writer struct {
	dir   string
	nowFn func() time.Time

	mu  sync.Mutex
	seq int
}

// NewWriter constructs a journal writer rooted at dir, creating the
// directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "journal"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: create dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, nowFn: time.Now}, nil
}

// WriteSubmission writes one record to a timestamped JSON file and returns
// the file path.
func (w *Writer) WriteSubmission(rec *SubmissionRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("journal: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}

	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	name := fmt.Sprintf("submission_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
