package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/svc"
	"mltrading-api/internal/types"
)

type SectorsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSectorsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SectorsLogic {
	return &SectorsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Sectors lists sector names in sorted order.
func (l *SectorsLogic) Sectors() (resp *types.SectorsResponse, err error) {
	counts := l.svcCtx.Universe.Sectors()
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Sector
	}
	return &types.SectorsResponse{Sectors: names, Count: len(names)}, nil
}
