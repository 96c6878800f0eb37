package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"clinicode-api/internal/svc"
	"clinicode-api/internal/types"
)

func HealthHandler(_ *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, &types.HealthResponse{Status: "ok"})
	}
}
