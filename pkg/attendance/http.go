package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"TimerBot/internal/model"
	"TimerBot/pkg/errors"
	"TimerBot/pkg/logger"
)

// HTTPValidator 调用后端 /attendance/validate 的实现
type HTTPValidator struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

func NewHTTPValidator(baseURL, secret string, timeout time.Duration) (*HTTPValidator, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPValidator{
		baseURL: baseURL,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (v *HTTPValidator) Validate(ctx context.Context, phone string, lat, lon float64) (*model.ValidationResult, error) {
	body, err := json.Marshal(model.ValidationRequest{
		Phone:     phone,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validation request: %w", err)
	}

	url := v.baseURL + "/attendance/validate"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		// 超时或传输失败都归到网关不可用，由调用方渲染通用失败文案
		logger.Logger.Error("Attendance gateway call failed",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, errors.GatewayUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.GatewayUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		logger.Logger.Error("Attendance gateway returned error status",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("phone", phone),
		)
		return nil, errors.GatewayUnavailable
	}

	var result model.ValidationResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		logger.Logger.Error("Attendance gateway returned malformed body", zap.Error(err))
		return nil, errors.GatewayBadResponse
	}

	if !result.Valid && result.Message == "" {
		// 拒绝必须带网关自己的理由，缺失按坏响应处理
		return nil, errors.GatewayBadResponse
	}

	return &result, nil
}
