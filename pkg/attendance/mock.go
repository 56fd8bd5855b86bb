package attendance

import (
	"context"
	"sync"

	"TimerBot/internal/model"
	"TimerBot/pkg/errors"
)

type MockCall struct {
	Phone     string
	Latitude  float64
	Longitude float64
}

// MockValidator 可配置的网关 mock，实现 Validator 接口
type MockValidator struct {
	mu    sync.Mutex
	Calls []MockCall

	// Result 下一次调用返回的结果，nil 时返回默认通过结果
	Result *model.ValidationResult
	// FailNext 置为 true 时，下一次调用返回网关不可用错误并自动复位
	FailNext bool
}

func NewMockValidator() *MockValidator {
	return &MockValidator{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockValidator) Validate(ctx context.Context, phone string, lat, lon float64) (*model.ValidationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Phone: phone, Latitude: lat, Longitude: lon})

	if m.FailNext {
		m.FailNext = false
		return nil, errors.GatewayUnavailable
	}

	if m.Result != nil {
		result := *m.Result
		return &result, nil
	}

	return &model.ValidationResult{
		Valid:   true,
		Message: "Check-in registrado",
	}, nil
}

// CallCount 返回已发生的调用次数
func (m *MockValidator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
