package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TimerBot/config"
	"TimerBot/internal/handler"
	"TimerBot/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	if config.Cfg.TracingEnabled {
		h.Use(middleware.OpenTelemetryMiddleware())
	}

	// 健康检查，不鉴权
	h.GET("/health", handler.HealthCheck)

	// Meta Cloud API 回调，GET 为订阅校验握手，POST 为事件投递
	h.GET("/webhook", handler.VerifyWebhook)
	h.POST("/webhook", handler.ReceiveWebhook)

	// 运营接口，后端用共享密钥调用
	v1 := h.Group("/v1")
	v1.Use(middleware.OperatorAuthMiddleware())
	{
		v1.POST("/messages", handler.PushMessage)
		v1.POST("/templates/invitation", handler.SendInvitation)
	}
}
