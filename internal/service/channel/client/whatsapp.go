package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gitee.com/aquaflow/purifier-notify/internal/errs"
	"github.com/go-resty/resty/v2"
)

type TwilioWhatsAppConfig struct {
	BaseURL    string        `json:"baseURL" yaml:"baseURL"`
	AccountSID string        `json:"accountSID" yaml:"accountSID"`
	AuthToken  string        `json:"authToken" yaml:"authToken"`
	From       string        `json:"from" yaml:"from"` // 发送方WhatsApp号码
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
}

// TwilioWhatsApp Twilio 消息接口的 WhatsApp 客户端
type TwilioWhatsApp struct {
	client     *resty.Client
	accountSID string
	from       string
}

func NewTwilioWhatsApp(cfg TwilioWhatsAppConfig) *TwilioWhatsApp {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken)
	return &TwilioWhatsApp{
		client:     client,
		accountSID: cfg.AccountSID,
		from:       cfg.From,
	}
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (w *TwilioWhatsApp) SendTemplate(ctx context.Context, toNumber, body string) (string, error) {
	var result twilioMessageResponse
	resp, err := w.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   "whatsapp:" + toNumber,
			"From": "whatsapp:" + w.from,
			"Body": body,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", w.accountSID))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrProviderTransient, err)
	}

	switch {
	case resp.IsSuccess():
		return result.SID, nil
	case resp.StatusCode() == http.StatusBadRequest ||
		resp.StatusCode() == http.StatusUnauthorized ||
		resp.StatusCode() == http.StatusNotFound:
		return "", fmt.Errorf("%w: code=%d message=%s", errs.ErrProviderPermanent, result.Code, result.Message)
	default:
		return "", fmt.Errorf("%w: status=%d code=%d message=%s",
			errs.ErrProviderTransient, resp.StatusCode(), result.Code, result.Message)
	}
}
