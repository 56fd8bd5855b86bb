package middleware

import (
	"context"
	"crypto/subtle"

	"github.com/cloudwego/hertz/pkg/app"

	"TimerBot/config"
	"TimerBot/pkg/errors"
	"TimerBot/pkg/response"
)

// OperatorAuthMiddleware 运营接口鉴权
// 后端与运营工具通过共享密钥调用 /v1 下的接口
func OperatorAuthMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		expected := "Bearer " + config.Cfg.BackendAPISecret
		got := string(c.GetHeader("Authorization"))

		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			response.Error(ctx, c, errors.Unauthorized)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
