package attendance

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"TimerBot/config"
	"TimerBot/internal/model"
	"TimerBot/pkg/logger"
)

// Validator 考勤校验网关客户端。
// 地理围栏和工时计算都在后端：这里只发起一次调用并解释响应，
// 不重试，也不推断打卡方向。
type Validator interface {
	// Validate 校验一次位置上报，phone 为带 + 的国际格式
	Validate(ctx context.Context, phone string, lat, lon float64) (*model.ValidationResult, error)
}

var (
	validator Validator
	once      sync.Once
	initErr   error
)

// Init 初始化考勤网关客户端
func Init() error {
	once.Do(func() {
		cfg := config.Cfg

		validator, initErr = NewHTTPValidator(cfg.BackendAPIURL, cfg.BackendAPISecret, cfg.BackendTimeout())
		if initErr != nil {
			logger.Logger.Error("Failed to initialize attendance gateway client", zap.Error(initErr))
			return
		}

		logger.Logger.Info("Attendance gateway client initialized successfully",
			zap.String("base_url", cfg.BackendAPIURL),
		)
	})

	return initErr
}

func GetValidator() Validator {
	if validator == nil {
		panic("Attendance validator not initialized, call attendance.Init() first")
	}
	return validator
}

// SetValidator 注入实现，测试用
func SetValidator(v Validator) {
	validator = v
}

func Validate(ctx context.Context, phone string, lat, lon float64) (*model.ValidationResult, error) {
	return GetValidator().Validate(ctx, phone, lat, lon)
}
