package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/go-resty/resty/v2"
)

type DevicePushConfig struct {
	BaseURL string        `json:"baseURL" yaml:"baseURL"`
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DevicePush 设备推送网关客户端
type DevicePush struct {
	client *resty.Client
}

func NewDevicePush(cfg DevicePushConfig) *DevicePush {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "key="+cfg.APIKey)
	return &DevicePush{client: client}
}

type pushRequest struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type pushResponse struct {
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

func (p *DevicePush) Push(ctx context.Context, deviceToken, title, body string) (string, error) {
	var result pushResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(pushRequest{Token: deviceToken, Title: title, Body: body}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/push")
	if err != nil {
		// 网络层错误按临时性处理，交给退避重试
		return "", fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}

	switch {
	case resp.IsSuccess():
		// token 已失效时网关在 200 里带 NotRegistered
		if result.Error == "NotRegistered" {
			return "", fmt.Errorf("%w: 设备token已失效", errs.ErrRecipientAddressMissing)
		}
		return result.MessageID, nil
	case resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusGone:
		return "", fmt.Errorf("%w: 设备token已失效, status=%d", errs.ErrRecipientAddressMissing, resp.StatusCode())
	case resp.StatusCode() == http.StatusBadRequest ||
		resp.StatusCode() == http.StatusUnauthorized ||
		resp.StatusCode() == http.StatusForbidden:
		return "", fmt.Errorf("%w: status=%d error=%s", errs.ErrProviderPermanent, resp.StatusCode(), result.Error)
	default:
		// 429 和 5xx 都可能在退避后恢复
		return "", fmt.Errorf("%w: status=%d error=%s", errs.ErrProviderTransient, resp.StatusCode(), result.Error)
	}
}
