package main

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server"
)

func main() {
	egoApp := ego.New()
	app := ioc.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, task := range app.Tasks {
		go task.Start(ctx)
	}

	if err := egoApp.Serve(func() server.Server {
		return app.Web
	}()).Run(); err != nil {
		elog.Panic("startup", elog.Any("err", err))
	}
}
