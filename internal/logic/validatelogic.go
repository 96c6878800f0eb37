package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

type ValidateLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewValidateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ValidateLogic {
	return &ValidateLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Validate flips the review flag of one row and returns the new snapshot.
func (l *ValidateLogic) Validate(req *types.ValidateRequest) (*types.SessionView, error) {
	state, err := l.svcCtx.Sessions.Validate(req.SessionId, req.Index, req.Validated)
	if err != nil {
		return nil, err
	}
	return &types.SessionView{
		SessionId:    state.SessionID(),
		SubmissionId: state.SubmissionID(),
		Rows:         rowViews(state),
	}, nil
}
