package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"TimerBot/pkg/logger"
)

const sendTimeout = 10 * time.Second

// GraphClient Meta Graph API 实现
type GraphClient struct {
	baseURL    string
	apiVersion string
	numberID   string
	token      string
	httpClient *http.Client
}

func NewGraphClient(baseURL, apiVersion, numberID, token string) (*GraphClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("graph base URL is required")
	}

	return &GraphClient{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		numberID:   numberID,
		token:      token,
		httpClient: &http.Client{Timeout: sendTimeout},
	}, nil
}

// 出站消息报文，按 Meta /messages 接口结构映射

type messagePayload struct {
	MessagingProduct string              `json:"messaging_product"`
	To               string              `json:"to"`
	Type             string              `json:"type"`
	Text             *textPayload        `json:"text,omitempty"`
	Image            *imagePayload       `json:"image,omitempty"`
	Interactive      *interactivePayload `json:"interactive,omitempty"`
	Template         *templatePayload    `json:"template,omitempty"`
}

type textPayload struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

type imagePayload struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type interactivePayload struct {
	Type   string            `json:"type"` // cta_url
	Body   interactiveBody   `json:"body"`
	Action interactiveAction `json:"action"`
}

type interactiveBody struct {
	Text string `json:"text"`
}

type interactiveAction struct {
	Name       string          `json:"name"`
	Parameters actionParameter `json:"parameters"`
}

type actionParameter struct {
	DisplayText string `json:"display_text"`
	URL         string `json:"url"`
}

type templatePayload struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []TemplateComponent `json:"components,omitempty"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

// TemplateComponent 模板消息组件（body 参数、URL 按钮等）
type TemplateComponent struct {
	Type       string              `json:"type"`
	SubType    string              `json:"sub_type,omitempty"`
	Index      *int                `json:"index,omitempty"`
	Parameters []TemplateParameter `json:"parameters,omitempty"`
}

type TemplateParameter struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type graphResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *graphError `json:"error,omitempty"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (c *GraphClient) SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	return c.send(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &textPayload{Body: body},
	})
}

func (c *GraphClient) SendImage(ctx context.Context, to, link, caption string) (*SendResponse, error) {
	return c.send(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "image",
		Image:            &imagePayload{Link: link, Caption: caption},
	})
}

func (c *GraphClient) SendInteractiveURL(ctx context.Context, to, body, buttonText, buttonURL string) (*SendResponse, error) {
	return c.send(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &interactivePayload{
			Type: "cta_url",
			Body: interactiveBody{Text: body},
			Action: interactiveAction{
				Name: "cta_url",
				Parameters: actionParameter{
					DisplayText: buttonText,
					URL:         buttonURL,
				},
			},
		},
	})
}

func (c *GraphClient) SendTemplate(ctx context.Context, to, templateName, languageCode string, components []TemplateComponent) (*SendResponse, error) {
	if templateName == "" {
		return nil, fmt.Errorf("template name is required")
	}

	return c.send(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: &templatePayload{
			Name:       templateName,
			Language:   templateLanguage{Code: languageCode},
			Components: components,
		},
	})
}

func (c *GraphClient) send(ctx context.Context, payload messagePayload) (*SendResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, c.numberID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed graphResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: statusCode=%d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			logger.Logger.Error("Graph API returned error",
				zap.Int("statusCode", resp.StatusCode),
				zap.Int("code", parsed.Error.Code),
				zap.String("message", parsed.Error.Message),
			)
			return nil, fmt.Errorf("graph API error: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("graph API error: statusCode=%d", resp.StatusCode)
	}

	result := &SendResponse{Provider: "meta"}
	if len(parsed.Messages) > 0 {
		result.MessageID = parsed.Messages[0].ID
	}

	logger.Logger.Debug("WhatsApp message sent",
		zap.String("to", payload.To),
		zap.String("type", payload.Type),
		zap.String("message_id", result.MessageID),
	)

	return result, nil
}
