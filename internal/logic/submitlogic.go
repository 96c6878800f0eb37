package logic

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/internal/model"
	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
	"clinicode-api/pkg/journal"
	"clinicode-api/pkg/suggest"
)

const outcomeOK = "ok"

type SubmitLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSubmitLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SubmitLogic {
	return &SubmitLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Submit runs the request-per-submission pipeline: one agent call, extract,
// normalize, install the review state. Failures are terminal and reported in
// the response body together with the raw agent text; a failed submission
// leaves any previous review state in place.
func (l *SubmitLogic) Submit(req *types.SubmitRequest) (*types.SubmitResponse, error) {
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, errors.New("note is required")
	}

	sessionID := strings.TrimSpace(req.SessionId)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	submissionID := uuid.NewString()

	start := time.Now()
	batch, err := l.svcCtx.Suggester.Analyze(l.ctx, note)
	latency := time.Since(start)

	if err != nil {
		kind := suggest.KindOf(err)
		if kind == "" {
			return nil, err
		}
		raw := suggest.RawOf(err)
		l.Errorf("submission %s: %s: %v", submissionID, kind, err)
		l.record(sessionID, submissionID, note, string(kind), 0, latency, raw, err)
		return &types.SubmitResponse{
			SessionId:    sessionID,
			SubmissionId: submissionID,
			Status:       string(kind),
			Message:      failureMessage(kind),
			Raw:          raw,
		}, nil
	}

	state := l.svcCtx.Sessions.PutSubmission(sessionID, submissionID, batch)
	l.Infof("submission %s: %d records", submissionID, state.Len())
	l.record(sessionID, submissionID, note, outcomeOK, state.Len(), latency, "", nil)

	return &types.SubmitResponse{
		SessionId:    sessionID,
		SubmissionId: submissionID,
		Status:       outcomeOK,
		Rows:         rowViews(state),
	}, nil
}

// record feeds the optional audit collaborators. Audit failures are logged,
// never surfaced: the review outcome already belongs to the user.
func (l *SubmitLogic) record(sessionID, submissionID, note, outcome string, count int, latency time.Duration, raw string, cause error) {
	digest := suggest.DigestString(note)

	if w := l.svcCtx.Journal; w != nil {
		rec := &journal.SubmissionRecord{
			SessionID:    sessionID,
			SubmissionID: submissionID,
			NoteDigest:   digest,
			PromptDigest: l.svcCtx.PromptDigest,
			RawResponse:  raw,
			RecordCount:  count,
			LatencyMS:    latency.Milliseconds(),
			Success:      outcome == outcomeOK,
		}
		if cause != nil {
			rec.FailureKind = outcome
			rec.ErrorMessage = cause.Error()
		}
		if _, err := w.WriteSubmission(rec); err != nil {
			l.Errorf("journal write failed: %v", err)
		}
	}

	if m := l.svcCtx.SubmissionsModel; m != nil {
		err := m.Insert(l.ctx, &model.Submission{
			SubmissionID: submissionID,
			SessionID:    sessionID,
			NoteDigest:   digest,
			Outcome:      outcome,
			RecordCount:  count,
			LatencyMS:    latency.Milliseconds(),
		})
		if err != nil {
			l.Errorf("submission audit insert failed: %v", err)
		}
	}
}
