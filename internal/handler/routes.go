package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"clinicode-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/notes",
				Handler: SubmitHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/sessions/:id",
				Handler: SessionHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/sessions/:id/rows/:index/validate",
				Handler: ValidateHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/sessions/:id/recap",
				Handler: RecapHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/v1/sessions/:id/dispatch",
				Handler: DispatchHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/healthz",
				Handler: HealthHandler(serverCtx),
			},
		},
	)
}
