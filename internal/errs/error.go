package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrIDGenerateFailed = errors.New("任务ID生成失败")

	ErrQueueUnavailable = errors.New("任务队列不可用")
	ErrNoPendingJob     = errors.New("暂无到期的待投递任务")
	ErrJobNotFound      = errors.New("投递任务不存在")

	ErrNotificationNotFound = errors.New("通知台账记录不存在")

	ErrRecipientNotFound       = errors.New("接收者不存在")
	ErrRecipientAddressMissing = errors.New("接收者缺少该渠道的联系方式")

	ErrProviderTransient      = errors.New("供应商临时性失败")
	ErrProviderPermanent      = errors.New("供应商永久性失败")
	ErrSendNotificationFailed = errors.New("发送通知失败")
)

// IsNonRetryable 判定失败原因是否不可重试。
// 接收者缺失和供应商永久性错误不会在退避窗口内自行恢复，直接进入 DEAD
func IsNonRetryable(err error) bool {
	return errors.Is(err, ErrRecipientNotFound) ||
		errors.Is(err, ErrRecipientAddressMissing) ||
		errors.Is(err, ErrProviderPermanent) ||
		errors.Is(err, ErrInvalidParameter)
}
