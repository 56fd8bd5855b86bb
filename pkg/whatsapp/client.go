package whatsapp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"TimerBot/config"
	"TimerBot/pkg/logger"
)

// SendResponse 渠道商返回的发送回执
type SendResponse struct {
	MessageID string // Meta 返回的 wamid
	Provider  string
}

// Client WhatsApp 消息客户端接口。
// 每次发送都是单次 best-effort HTTP 调用，不带重试状态。
type Client interface {
	// SendText 发送自由文本消息（需要活跃会话窗口）
	SendText(ctx context.Context, to, body string) (*SendResponse, error)

	// SendImage 发送图片消息，link 为可公开访问的媒体地址
	SendImage(ctx context.Context, to, link, caption string) (*SendResponse, error)

	// SendInteractiveURL 发送带 URL 按钮的交互消息
	SendInteractiveURL(ctx context.Context, to, body, buttonText, buttonURL string) (*SendResponse, error)

	// SendTemplate 发送已审核模板消息，可在会话窗口外触达用户
	SendTemplate(ctx context.Context, to, templateName, languageCode string, components []TemplateComponent) (*SendResponse, error)
}

var (
	waClient Client
	waOnce   sync.Once
	waErr    error
)

// Init 初始化 WhatsApp 客户端
func Init() error {
	waOnce.Do(func() {
		cfg := config.Cfg

		waClient, waErr = NewGraphClient(cfg.MetaGraphBaseURL, cfg.MetaAPIVersion, cfg.MetaNumberID, cfg.MetaJWTToken)
		if waErr != nil {
			logger.Logger.Error("Failed to initialize WhatsApp client", zap.Error(waErr))
			return
		}

		logger.Logger.Info("WhatsApp client initialized successfully",
			zap.String("api_version", cfg.MetaAPIVersion),
			zap.String("number_id", cfg.MetaNumberID),
		)
	})

	return waErr
}

func GetClient() Client {
	if waClient == nil {
		panic("WhatsApp client not initialized, call whatsapp.Init() first")
	}
	return waClient
}

// SetClient 注入客户端实现，测试用
func SetClient(c Client) {
	waClient = c
}

func SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	return GetClient().SendText(ctx, to, body)
}

func SendImage(ctx context.Context, to, link, caption string) (*SendResponse, error) {
	return GetClient().SendImage(ctx, to, link, caption)
}

func SendInteractiveURL(ctx context.Context, to, body, buttonText, buttonURL string) (*SendResponse, error) {
	return GetClient().SendInteractiveURL(ctx, to, body, buttonText, buttonURL)
}

func SendTemplate(ctx context.Context, to, templateName, languageCode string, components []TemplateComponent) (*SendResponse, error) {
	return GetClient().SendTemplate(ctx, to, templateName, languageCode, components)
}
