package domain

import "time"

// SendStatus 通知台账状态
type SendStatus string

const (
	SendStatusPending SendStatus = "PENDING" // 已入队，等待投递
	SendStatusSent    SendStatus = "SENT"    // 投递成功
	SendStatusFailed  SendStatus = "FAILED"  // 终态失败
)

func (s SendStatus) String() string {
	return string(s)
}

// Notification 通知台账。记录每次入队请求每个接收者的最终结果，
// 与队列任务同 ID 但生命周期独立：任务可以在终态后被清理，台账长期保留
type Notification struct {
	ID      uint64     // 与对应投递任务相同的雪花ID
	UserID  int64      // 接收者用户ID
	Channel Channel    // 渠道
	Message string     // 正文
	Status  SendStatus // 台账状态
	SentAt  time.Time  // 投递成功时间，零值表示尚未成功
	Ctime   int64
	Utime   int64
}
