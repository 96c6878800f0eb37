package session

import (
	"errors"
	"fmt"
	"time"

	"clinicode-api/pkg/suggest"
)

var (
	ErrNotFound      = errors.New("session: not found")
	ErrRowOutOfRange = errors.New("session: row index out of range")
)

// Row pairs one suggested record with its review flag.
type Row struct {
	Record    suggest.Record
	Validated bool
}

// ReviewState is an immutable snapshot of one session's review grid: the
// batch produced by the latest submission plus per-row validation flags.
// Review actions never mutate a snapshot; they derive a new one, so a state
// handed to a renderer stays stable while the session moves on.
type ReviewState struct {
	sessionID    string
	submissionID string
	batch        suggest.Batch
	validated    []bool
	createdAt    time.Time
}

// NewReviewState builds the fresh snapshot for a submission. Flags start
// cleared: a new batch always means a new review.
func NewReviewState(sessionID, submissionID string, batch suggest.Batch) *ReviewState {
	owned := make(suggest.Batch, len(batch))
	copy(owned, batch)
	return &ReviewState{
		sessionID:    sessionID,
		submissionID: submissionID,
		batch:        owned,
		validated:    make([]bool, len(owned)),
		createdAt:    time.Now(),
	}
}

func (s *ReviewState) SessionID() string    { return s.sessionID }
func (s *ReviewState) SubmissionID() string { return s.submissionID }
func (s *ReviewState) CreatedAt() time.Time { return s.createdAt }
func (s *ReviewState) Len() int             { return len(s.batch) }

// Rows returns the review grid in submission order.
func (s *ReviewState) Rows() []Row {
	rows := make([]Row, len(s.batch))
	for i, rec := range s.batch {
		rows[i] = Row{Record: rec, Validated: s.validated[i]}
	}
	return rows
}

// WithValidation derives a new snapshot with the flag at index set to v.
func (s *ReviewState) WithValidation(index int, v bool) (*ReviewState, error) {
	if index < 0 || index >= len(s.batch) {
		return nil, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, len(s.batch))
	}
	next := &ReviewState{
		sessionID:    s.sessionID,
		submissionID: s.submissionID,
		batch:        s.batch,
		validated:    make([]bool, len(s.validated)),
		createdAt:    s.createdAt,
	}
	copy(next.validated, s.validated)
	next.validated[index] = v
	return next, nil
}

// Recap lists the code field of every validated row, in order.
func (s *ReviewState) Recap() []string {
	codes := make([]string, 0, len(s.batch))
	for i, rec := range s.batch {
		if s.validated[i] {
			codes = append(codes, rec.Code)
		}
	}
	return codes
}
