package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
)

type SMTPConfig struct {
	Host     string        `json:"host" yaml:"host"`
	Port     int           `json:"port" yaml:"port"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	From     string        `json:"from" yaml:"from"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// SMTPMailer 直连 SMTP 服务器发信。
// 标准库 smtp.SendMail 不接受 context，这里手工走一遍会话以便支持超时取消
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendMail(ctx context.Context, toAddr, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: 连接SMTP服务器失败: %w", errs.ErrProviderTransient, err)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}
	defer func() { _ = c.Close() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		// 鉴权失败多半是配额或临时封禁，修复后重试能成功
		if err = c.Auth(auth); err != nil {
			return fmt.Errorf("%w: SMTP鉴权失败: %w", errs.ErrProviderTransient, err)
		}
	}

	if err = c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}
	if err = c.Rcpt(toAddr); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.From, toAddr, subject, body)
	if _, err = w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}
	return c.Quit()
}
