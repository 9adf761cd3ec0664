package assistant

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"meal-planner/domain"
	"meal-planner/internal/utils"

	"go.uber.org/zap"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	defaultModel         = "claude-opus-4-5-20251101"
)

type (
	// anthropicClient is a thin wrapper over the Anthropic messages API.
	// No request timeout is set here; callers bound calls via context.
	anthropicClient struct {
		httpClient *http.Client
		apiKey     string
		model      string
	}

	contentBlock struct {
		Type   string       `json:"type"`
		Text   string       `json:"text,omitempty"`
		Source *imageSource `json:"source,omitempty"`
	}

	imageSource struct {
		Type      string `json:"type"`
		MediaType string `json:"media_type"`
		Data      string `json:"data"`
	}

	messagesRequest struct {
		Model     string        `json:"model"`
		MaxTokens int           `json:"max_tokens"`
		Messages  []userMessage `json:"messages"`
	}

	userMessage struct {
		Role    string         `json:"role"`
		Content []contentBlock `json:"content"`
	}

	messagesResponse struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
)

func newAnthropicClient() *anthropicClient {
	model := utils.GetConfig("ANTHROPIC_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &anthropicClient{
		httpClient: &http.Client{},
		apiKey:     utils.GetConfig("ANTHROPIC_API_KEY"),
		model:      model,
	}
}

// complete sends a single text prompt and returns the first text block of
// the response.
func (c *anthropicClient) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return c.send(ctx, []contentBlock{{Type: "text", Text: prompt}}, maxTokens)
}

// completeWithImages sends image blocks followed by a text prompt, the layout
// used for receipt extraction.
func (c *anthropicClient) completeWithImages(ctx context.Context, prompt string, images []domain.ReceiptImage, maxTokens int) (string, error) {
	blocks := make([]contentBlock, 0, len(images)+1)
	for _, img := range images {
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: img.MediaType,
				Data:      base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}
	blocks = append(blocks, contentBlock{Type: "text", Text: prompt})
	return c.send(ctx, blocks, maxTokens)
}

func (c *anthropicClient) send(ctx context.Context, blocks []contentBlock, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrAIKeyNotConfigured
	}

	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []userMessage{{Role: "user", Content: blocks}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.Logger.Warn("assistant request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrAICallFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAICallFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		utils.Logger.Warn("assistant returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return "", fmt.Errorf("%w: status %d", domain.ErrAICallFailed, resp.StatusCode)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAIResponseInvalid, err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", domain.ErrAIResponseInvalid
}
