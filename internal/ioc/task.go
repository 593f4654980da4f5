package ioc

import (
	"context"

	"gitee.com/aquaflow/purifier-notify/internal/service/dispatcher"
)

// Task 后台常驻任务，Start 阻塞到 ctx 取消
type Task interface {
	Start(ctx context.Context)
}

func InitTasks(
	d *dispatcher.Dispatcher,
	requeue *dispatcher.RequeueStuckTask,
) []Task {
	return []Task{
		d,
		requeue,
	}
}
