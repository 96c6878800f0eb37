package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

type RecapLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRecapLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RecapLogic {
	return &RecapLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Recap lists the codes of validated rows in submission order.
func (l *RecapLogic) Recap(req *types.RecapRequest) (*types.RecapResponse, error) {
	state, err := l.svcCtx.Sessions.Get(req.SessionId)
	if err != nil {
		return nil, err
	}
	return &types.RecapResponse{
		SessionId: state.SessionID(),
		Codes:     state.Recap(),
	}, nil
}
