package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/resolver"
	"mltrading-api/internal/svc"
	"mltrading-api/internal/types"
)

type HistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HistoryLogic) History(req *types.HistoryRequest) (*resolver.Resolution[resolver.History], error) {
	res, err := l.svcCtx.Resolver.History(l.ctx, req.Symbol, req.Period)
	if err != nil {
		return nil, err
	}
	l.Infof("history %s/%s served from %s (%d bars)", res.Symbol, res.Period, res.Source, res.Data.Count)
	return res, nil
}
