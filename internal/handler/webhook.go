package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"TimerBot/config"
	"TimerBot/internal/model"
	"TimerBot/internal/service"
	"TimerBot/pkg/logger"
)

// VerifyWebhook Meta 配置 webhook 时的校验握手
// GET /webhook
func VerifyWebhook(ctx context.Context, c *app.RequestContext) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == config.Cfg.MetaVerifyToken {
		c.String(consts.StatusOK, challenge)
		return
	}

	logger.Logger.Warn("Webhook verification rejected", zap.String("mode", mode))
	c.AbortWithStatus(consts.StatusForbidden)
}

// ReceiveWebhook 接收 Meta 的消息事件投递
// POST /webhook
//
// 无论管道内部结果如何都回 200：渠道商只要拿不到确认就会重投，
// 内部失败已经在管道里转成了用户通知或日志。
func ReceiveWebhook(ctx context.Context, c *app.RequestContext) {
	var payload model.WebhookPayload
	if err := c.BindJSON(&payload); err != nil {
		logger.Logger.Warn("Failed to parse webhook payload", zap.Error(err))
		c.String(consts.StatusOK, "EVENT_RECEIVED")
		return
	}

	service.Ingest().ProcessWebhook(ctx, &payload)

	c.String(consts.StatusOK, "EVENT_RECEIVED")
}
