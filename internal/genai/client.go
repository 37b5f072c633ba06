package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "linguachat/backend/internal/errors"
	"linguachat/backend/internal/model"
	"linguachat/backend/internal/quota"
)

// documentPromptTemplate and visionInstruction are fixed request templates.
// Their wording is a compatibility contract with the deployed prompts.
const (
	documentPromptTemplate = "Based on this document content:\n\n%s\n\nUser question: %s"
	visionInstruction      = "Analyze this image and answer: %s"

	// emptyResponseFallback is returned when the provider replies with no text.
	emptyResponseFallback = "I could not generate a response. Please try again."
)

// Generator is the orchestrator-facing contract of the generation client.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, file *model.UploadedFile) (string, error)
}

// Client is the quota-aware generation client. It gates every call on the
// quota controller, builds the provider request from the prompt and the
// session's active file, and classifies provider failures.
type Client struct {
	provider   Provider
	classifier ErrorClassifier
	quota      *quota.Controller
}

// NewClient wires a Client.
func NewClient(provider Provider, classifier ErrorClassifier, quotaCtrl *quota.Controller) *Client {
	return &Client{provider: provider, classifier: classifier, quota: quotaCtrl}
}

// GenerateText runs one generation call. It fails fast with ErrQuotaExhausted
// when the daily allowance is used up, so callers must not double-generate
// past the limit. Usage is recorded only on success.
func (c *Client) GenerateText(ctx context.Context, prompt string, file *model.UploadedFile) (string, error) {
	if !c.quota.CheckLimit().CanUse {
		return "", app_errors.ErrQuotaExhausted
	}

	req, err := buildRequest(prompt, file)
	if err != nil {
		return "", err
	}

	resp, err := c.provider.Generate(ctx, c.quota.Credential(), req)
	if err != nil {
		classified := c.classifier.Classify(err)
		slog.Warn("Generation request failed.", "classified", classified, "error", err)
		return "", fmt.Errorf("%w: %s", classified, err.Error())
	}

	c.quota.RecordUse()

	if resp.Text == "" {
		return emptyResponseFallback, nil
	}
	return resp.Text, nil
}

// buildRequest applies the three request shapes: bare prompt, document
// context, or vision instruction with the inline image payload.
func buildRequest(prompt string, file *model.UploadedFile) (*Request, error) {
	if file == nil {
		return &Request{Prompt: prompt}, nil
	}
	if !file.IsImage {
		return &Request{Prompt: fmt.Sprintf(documentPromptTemplate, file.Content, prompt)}, nil
	}

	mimeType, data, err := splitDataURL(file.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", app_errors.ErrGenerationFailed, err.Error())
	}
	return &Request{
		Prompt: fmt.Sprintf(visionInstruction, prompt),
		Inline: &InlineData{MIMEType: mimeType, Data: data},
	}, nil
}

// splitDataURL splits "data:image/png;base64,AAAA" into MIME type and payload.
func splitDataURL(dataURL string) (mimeType, data string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", fmt.Errorf("stored image is not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("stored image data URL has no payload")
	}
	mimeType = strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		return "", "", fmt.Errorf("stored image data URL has no MIME type")
	}
	return mimeType, payload, nil
}
