package client

import "context"

//go:generate mockgen -source=./client.go -destination=./mocks/client.mock.go -package=clientmocks -typed Pusher,TemplateMessager,Mailer

// Pusher 设备推送供应商客户端
type Pusher interface {
	// Push 向设备token推送一条通知，返回供应商消息ID
	Push(ctx context.Context, deviceToken, title, body string) (string, error)
}

// TemplateMessager WhatsApp 模板消息供应商客户端
type TemplateMessager interface {
	// SendTemplate 向号码发送模板消息，返回供应商消息ID
	SendTemplate(ctx context.Context, toNumber, body string) (string, error)
}

// Mailer 邮件发送客户端
type Mailer interface {
	// SendMail 发送一封邮件
	SendMail(ctx context.Context, toAddr, subject, body string) error
}
