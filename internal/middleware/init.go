package middleware

import (
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"TimerBot/config"
	"TimerBot/pkg/logger"
)

// Init 初始化所有中间件
func Init() error {
	if config.Cfg.TracingEnabled {
		if err := InitMetrics(otel.Meter("timerbot-http")); err != nil {
			logger.Logger.Error("Failed to initialize HTTP metrics", zap.Error(err))
			return err
		}
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
