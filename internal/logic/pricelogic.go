package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/resolver"
	"mltrading-api/internal/svc"
	"mltrading-api/internal/types"
)

type PriceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPriceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PriceLogic {
	return &PriceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *PriceLogic) Price(req *types.PriceRequest) (*resolver.Resolution[resolver.Quote], error) {
	res, err := l.svcCtx.Resolver.CurrentPrice(l.ctx, req.Symbol)
	if err != nil {
		return nil, err
	}
	l.Infof("price %s served from %s", res.Symbol, res.Source)
	return res, nil
}
