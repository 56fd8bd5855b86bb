package model

// PushMessageRequest 后端推送任意出站通知的请求体。
// 字段名保持与后端既有调用方一致（camelCase）。
type PushMessageRequest struct {
	Number     string `json:"number"`
	Message    string `json:"message"`
	URLMedia   string `json:"urlMedia,omitempty"`
	ButtonURL  string `json:"buttonUrl,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
}

// PushMessageResponse 推送结果，dispatch_id 用于日志对账
type PushMessageResponse struct {
	Success    bool   `json:"success"`
	DispatchID string `json:"dispatch_id,omitempty"`
}

// InvitationRequest 员工入职邀请（模板消息，可在会话窗口外送达）
type InvitationRequest struct {
	Phone         string   `json:"phone"`
	EmployeeName  string   `json:"employee_name"`
	BusinessName  string   `json:"business_name"`
	Branches      []string `json:"branches"`
	InvitationURL string   `json:"invitation_url"`
	TemplateName  string   `json:"template_name,omitempty"`
}
