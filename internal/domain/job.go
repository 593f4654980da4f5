package domain

import (
	"fmt"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
)

// JobStatus 投递任务状态
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"    // 等待投递
	JobStatusProcessing JobStatus = "PROCESSING" // 已被 worker 认领
	JobStatusDelivered  JobStatus = "DELIVERED"  // 投递成功，终态
	JobStatusFailed     JobStatus = "FAILED"     // 本次尝试失败，退避后重试
	JobStatusDead       JobStatus = "DEAD"       // 重试耗尽或不可重试，终态
)

func (s JobStatus) String() string {
	return string(s)
}

// DefaultMaxAttempts 默认重试上限
const DefaultMaxAttempts int32 = 3

// DeliveryJob 投递任务：单接收者、单渠道的一次通知投递
type DeliveryJob struct {
	ID              uint64    // 任务唯一标识，入队时分配
	Channel         Channel   // 投递渠道
	RecipientUserID int64     // 接收者用户ID
	Title           string    // 标题，PUSH/EMAIL 必填，WHATSAPP 忽略
	Message         string    // 正文
	Attempt         int32     // 已尝试次数
	MaxAttempts     int32     // 重试上限
	Status          JobStatus // 任务状态
	CreatedAt       time.Time
	NextAttemptAt   time.Time // 下一次允许投递的时间
}

func (j *DeliveryJob) Validate() error {
	if j.RecipientUserID <= 0 {
		return fmt.Errorf("%w: RecipientUserID = %d", errs.ErrInvalidParameter, j.RecipientUserID)
	}

	if !j.Channel.IsValid() {
		return fmt.Errorf("%w: Channel = %q", errs.ErrInvalidParameter, j.Channel)
	}

	if j.Message == "" {
		return fmt.Errorf("%w: Message 不能为空", errs.ErrInvalidParameter)
	}

	if j.Channel.RequiresTitle() && j.Title == "" {
		return fmt.Errorf("%w: 渠道 %s 必须有标题", errs.ErrInvalidParameter, j.Channel)
	}

	return nil
}
