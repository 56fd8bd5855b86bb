package whatsapp

import (
	"context"
	"strings"
)

// DefaultInvitationTemplate Meta 后台已审核的入职邀请模板名
const DefaultInvitationTemplate = "employee_invitation"

// InvitationLanguage 邀请模板的语言代码
const InvitationLanguage = "es"

// InvitationParams 员工入职邀请参数
type InvitationParams struct {
	Phone         string // E.164 格式，带 +
	EmployeeName  string
	BusinessName  string
	Branches      []string
	InvitationURL string
	TemplateName  string // 为空时使用 DefaultInvitationTemplate
}

// InvitationComponents 构造邀请模板的组件：
// body 依次填 姓名、商户名、分店列表，URL 按钮填邀请链接。
func InvitationComponents(params InvitationParams) (string, []TemplateComponent) {
	templateName := params.TemplateName
	if templateName == "" {
		templateName = DefaultInvitationTemplate
	}

	branchesText := "Sucursales asignadas"
	if len(params.Branches) > 0 {
		branchesText = strings.Join(params.Branches, ", ")
	}

	buttonIndex := 0
	components := []TemplateComponent{
		{
			Type: "body",
			Parameters: []TemplateParameter{
				{Type: "text", Text: params.EmployeeName},
				{Type: "text", Text: params.BusinessName},
				{Type: "text", Text: branchesText},
			},
		},
		{
			Type:    "button",
			SubType: "url",
			Index:   &buttonIndex,
			Parameters: []TemplateParameter{
				{Type: "text", Text: params.InvitationURL},
			},
		},
	}

	return templateName, components
}

// SendEmployeeInvitation 发送员工入职邀请模板消息
func SendEmployeeInvitation(ctx context.Context, params InvitationParams) (*SendResponse, error) {
	templateName, components := InvitationComponents(params)
	return SendTemplate(ctx, params.Phone, templateName, InvitationLanguage, components)
}
