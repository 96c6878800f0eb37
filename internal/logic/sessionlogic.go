package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

type SessionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSessionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SessionLogic {
	return &SessionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Session returns the current review grid for a session.
func (l *SessionLogic) Session(req *types.SessionRequest) (*types.SessionView, error) {
	state, err := l.svcCtx.Sessions.Get(req.SessionId)
	if err != nil {
		return nil, err
	}
	return &types.SessionView{
		SessionId:    state.SessionID(),
		SubmissionId: state.SubmissionID(),
		Rows:         rowViews(state),
	}, nil
}
