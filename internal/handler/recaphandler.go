package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"clinicode-api/internal/logic"
	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

func RecapHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RecapRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewRecapLogic(r.Context(), svcCtx)
		resp, err := l.Recap(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
