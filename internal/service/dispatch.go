package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"TimerBot/internal/model"
	"TimerBot/pkg/errors"
	"TimerBot/pkg/logger"
	"TimerBot/pkg/metrics"
	"TimerBot/pkg/snowflake"
	"TimerBot/pkg/whatsapp"
	"TimerBot/utils"
)

// DispatchService 运营面出站通知：后端通过 /v1/messages 推送任意消息，
// 通过 /v1/templates/invitation 在会话窗口外发送入职邀请。
type DispatchService struct {
	sender whatsapp.Client
}

var (
	dispatchService *DispatchService
	dispatchOnce    sync.Once
)

func Dispatch() *DispatchService {
	dispatchOnce.Do(func() {
		dispatchService = NewDispatchService(whatsapp.GetClient())
	})

	return dispatchService
}

func NewDispatchService(sender whatsapp.Client) *DispatchService {
	return &DispatchService{sender: sender}
}

// Push 推送一条出站消息。urlMedia 优先走图片，
// buttonUrl/buttonText 走交互按钮，其余为纯文本。
func (s *DispatchService) Push(ctx context.Context, req model.PushMessageRequest) (string, error) {
	if req.Number == "" || req.Message == "" {
		return "", errors.InvalidRequest
	}

	to := utils.NormalizePhone(req.Number)
	dispatchID, _ := snowflake.NextID()

	var (
		kind string
		err  error
	)

	switch {
	case req.URLMedia != "":
		kind = "image"
		_, err = s.sender.SendImage(ctx, to, req.URLMedia, req.Message)
	case req.ButtonURL != "":
		kind = "interactive"
		buttonText := req.ButtonText
		if buttonText == "" {
			buttonText = "Abrir"
		}
		_, err = s.sender.SendInteractiveURL(ctx, to, req.Message, buttonText, req.ButtonURL)
	default:
		kind = "text"
		_, err = s.sender.SendText(ctx, to, req.Message)
	}

	if err != nil {
		metrics.GetMetrics().RecordMessageSent(ctx, kind, "failure")
		logger.Logger.Error("Failed to push message",
			zap.String("to", to),
			zap.String("kind", kind),
			zap.Int64("dispatch_id", dispatchID),
			zap.Error(err),
		)
		return "", errors.SendFailed
	}

	metrics.GetMetrics().RecordMessageSent(ctx, kind, "success")
	return strconv.FormatInt(dispatchID, 10), nil
}

// Invite 发送员工入职邀请模板消息
func (s *DispatchService) Invite(ctx context.Context, req model.InvitationRequest) (string, error) {
	if req.Phone == "" || req.EmployeeName == "" || req.InvitationURL == "" {
		return "", errors.InvalidRequest
	}

	dispatchID, _ := snowflake.NextID()

	templateName, components := whatsapp.InvitationComponents(whatsapp.InvitationParams{
		Phone:         req.Phone,
		EmployeeName:  req.EmployeeName,
		BusinessName:  req.BusinessName,
		Branches:      req.Branches,
		InvitationURL: req.InvitationURL,
		TemplateName:  req.TemplateName,
	})

	phone := utils.NormalizePhone(req.Phone)
	if _, err := s.sender.SendTemplate(ctx, phone, templateName, whatsapp.InvitationLanguage, components); err != nil {
		metrics.GetMetrics().RecordMessageSent(ctx, "template", "failure")
		logger.Logger.Error("Failed to send invitation template",
			zap.String("to", phone),
			zap.String("template", templateName),
			zap.Int64("dispatch_id", dispatchID),
			zap.Error(err),
		)
		return "", errors.SendFailed
	}

	metrics.GetMetrics().RecordMessageSent(ctx, "template", "success")
	return strconv.FormatInt(dispatchID, 10), nil
}
