package genai

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type geminiProvider struct {
	client *resty.Client
	model  string
}

// NewGeminiProvider returns a Provider targeting a Gemini-style
// generateContent REST endpoint.
func NewGeminiProvider(baseURL, model string) Provider {
	return &geminiProvider{
		client: resty.New().SetBaseURL(baseURL),
		model:  model,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (p *geminiProvider) Generate(ctx context.Context, apiKey string, req *Request) (*Response, error) {
	parts := []geminiPart{{Text: req.Prompt}}
	if req.Inline != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: req.Inline.MIMEType,
			Data:     req.Inline.Data,
		}})
	}

	body := geminiRequest{Contents: []geminiContent{{Parts: parts}}}

	var result geminiResponse
	var apiErr geminiError
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", p.model))
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	if resp.IsError() {
		message := apiErr.Error.Message
		if message == "" {
			message = resp.Status()
		}
		// The message text is preserved verbatim: the classifier matches on it.
		return nil, fmt.Errorf("provider returned %d %s: %s", resp.StatusCode(), apiErr.Error.Status, message)
	}

	var text string
	if len(result.Candidates) > 0 {
		for _, part := range result.Candidates[0].Content.Parts {
			text += part.Text
		}
	}
	return &Response{Text: text}, nil
}
