package whatsapp

import (
	"context"
	"errors"
	"sync"
)

type MockCall struct {
	Kind         string // text, image, interactive, template
	To           string
	Body         string
	Link         string
	ButtonText   string
	ButtonURL    string
	TemplateName string
	Language     string
	Components   []TemplateComponent
}

// MockClient 可配置的 WhatsApp 客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockClient) record(call MockCall) (*SendResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, call)

	if m.FailNext {
		m.FailNext = false
		return nil, errors.New("mock whatsapp send failure")
	}

	return &SendResponse{
		MessageID: "wamid.mock",
		Provider:  "mock",
	}, nil
}

func (m *MockClient) SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	return m.record(MockCall{Kind: "text", To: to, Body: body})
}

func (m *MockClient) SendImage(ctx context.Context, to, link, caption string) (*SendResponse, error) {
	return m.record(MockCall{Kind: "image", To: to, Link: link, Body: caption})
}

func (m *MockClient) SendInteractiveURL(ctx context.Context, to, body, buttonText, buttonURL string) (*SendResponse, error) {
	return m.record(MockCall{Kind: "interactive", To: to, Body: body, ButtonText: buttonText, ButtonURL: buttonURL})
}

func (m *MockClient) SendTemplate(ctx context.Context, to, templateName, languageCode string, components []TemplateComponent) (*SendResponse, error) {
	return m.record(MockCall{Kind: "template", To: to, TemplateName: templateName, Language: languageCode, Components: components})
}

// CallsSnapshot 返回调用记录副本，避免并发读写
func (m *MockClient) CallsSnapshot() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockCall, len(m.Calls))
	copy(out, m.Calls)
	return out
}
