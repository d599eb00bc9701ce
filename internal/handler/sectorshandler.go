package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"mltrading-api/internal/logic"
	"mltrading-api/internal/svc"
)

func SectorsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewSectorsLogic(r.Context(), svcCtx)
		resp, err := l.Sectors()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
