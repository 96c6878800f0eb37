package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

const defaultDispatchTarget = "his"

type DispatchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDispatchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DispatchLogic {
	return &DispatchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Dispatch hands the validated codes over to the target hospital information
// system. The hand-off itself is a stub: the codes are logged and a receipt
// is returned, no external system is reached.
func (l *DispatchLogic) Dispatch(req *types.DispatchRequest) (*types.DispatchResponse, error) {
	state, err := l.svcCtx.Sessions.Get(req.SessionId)
	if err != nil {
		return nil, err
	}

	codes := state.Recap()
	if len(codes) == 0 {
		return nil, errors.New("dispatch: no validated rows in session")
	}

	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = defaultDispatchTarget
	}

	receipt := uuid.NewString()
	l.Infof("dispatch %s: session %s -> %s codes=%v", receipt, req.SessionId, target, codes)

	return &types.DispatchResponse{
		SessionId: req.SessionId,
		Target:    target,
		Codes:     codes,
		Status:    "accepted",
		ReceiptId: receipt,
	}, nil
}
