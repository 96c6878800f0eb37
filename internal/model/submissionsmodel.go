package model

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ SubmissionsModel = (*defaultSubmissionsModel)(nil)

type (
	// SubmissionsModel is the audit trail of note submissions. It stores
	// metadata only: the note text and the suggestion batch never reach the
	// database.
	SubmissionsModel interface {
		Insert(ctx context.Context, data *Submission) error
		FindBySubmissionID(ctx context.Context, submissionID string) (*Submission, error)
		FindRecentBySession(ctx context.Context, sessionID string, limit int) ([]*Submission, error)
	}

	Submission struct {
		ID           int64     `db:"id"`
		SubmissionID string    `db:"submission_id"`
		SessionID    string    `db:"session_id"`
		NoteDigest   string    `db:"note_digest"`
		Outcome      string    `db:"outcome"`
		RecordCount  int       `db:"record_count"`
		LatencyMS    int64     `db:"latency_ms"`
		CreatedAt    time.Time `db:"created_at"`
	}

	defaultSubmissionsModel struct {
		conn sqlx.SqlConn
	}
)

// NewSubmissionsModel returns a model for the submissions table.
func NewSubmissionsModel(conn sqlx.SqlConn) SubmissionsModel {
	return &defaultSubmissionsModel{conn: conn}
}

func (m *defaultSubmissionsModel) Insert(ctx context.Context, data *Submission) error {
	const q = `INSERT INTO submissions
		(submission_id, session_id, note_digest, outcome, record_count, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := m.conn.ExecCtx(ctx, q,
		data.SubmissionID, data.SessionID, data.NoteDigest,
		data.Outcome, data.RecordCount, data.LatencyMS)
	return err
}

func (m *defaultSubmissionsModel) FindBySubmissionID(ctx context.Context, submissionID string) (*Submission, error) {
	const q = `SELECT id, submission_id, session_id, note_digest, outcome, record_count, latency_ms, created_at
		FROM submissions WHERE submission_id = $1 LIMIT 1`
	var out Submission
	if err := m.conn.QueryRowCtx(ctx, &out, q, submissionID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *defaultSubmissionsModel) FindRecentBySession(ctx context.Context, sessionID string, limit int) ([]*Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id, submission_id, session_id, note_digest, outcome, record_count, latency_ms, created_at
		FROM submissions WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`
	var out []*Submission
	if err := m.conn.QueryRowsCtx(ctx, &out, q, sessionID, limit); err != nil {
		return nil, err
	}
	return out, nil
}
