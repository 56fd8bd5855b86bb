package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"TimerBot/config"
)

// HealthCheck 健康检查，供负载均衡与容器探针使用
func HealthCheck(ctx context.Context, c *app.RequestContext) {
	c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": config.Cfg.ServiceName,
	})
}
