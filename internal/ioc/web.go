package ioc

import (
	"gitee.com/aquaflow/purifier-notify/internal/api/web"
	"github.com/gotomicro/ego/server/egin"
)

func InitWebServer(handler *web.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	handler.RegisterRoutes(server.Engine)
	return server
}
