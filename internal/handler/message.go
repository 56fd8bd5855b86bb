package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TimerBot/internal/model"
	"TimerBot/internal/service"
	"TimerBot/pkg/response"
)

// PushMessage 后端推送任意出站通知
// POST /v1/messages
func PushMessage(ctx context.Context, c *app.RequestContext) {
	var req model.PushMessageRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	dispatchID, err := service.Dispatch().Push(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, model.PushMessageResponse{
		Success:    true,
		DispatchID: dispatchID,
	})
}

// SendInvitation 发送员工入职邀请模板消息
// POST /v1/templates/invitation
func SendInvitation(ctx context.Context, c *app.RequestContext) {
	var req model.InvitationRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	dispatchID, err := service.Dispatch().Invite(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, model.PushMessageResponse{
		Success:    true,
		DispatchID: dispatchID,
	})
}
