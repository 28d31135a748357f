package groq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gastozero/backend/constants"
	"github.com/gastozero/backend/internal/llm"
)

// AnalyzeReceiptImage implements llm.VisionClient against the Groq
// chat/completions endpoint. It sends one chat-style request: a system
// instruction plus the fixed extraction prompt with the image embedded as a
// base64 data URL. The envelope comes back untouched; parsing is the
// parser's job.
func (c *Client) AnalyzeReceiptImage(ctx context.Context, imagePath string) (llm.ReceiptExtraction, error) {
	rid := uuid.New().String()
	start := time.Now()

	if !c.Configured() {
		return llm.ReceiptExtraction{}, &llm.ProviderError{
			Kind:    llm.KindConfiguration,
			Message: "provider API key is not configured (set GROQ_API_KEY)",
		}
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return llm.ReceiptExtraction{}, fmt.Errorf("read image %s: %w", filepath.Base(imagePath), err)
	}
	mimeType := constants.MIMEByExt(filepath.Ext(imagePath))
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(imageBytes)

	c.log.Info("llm.analyze.start",
		"req_id", rid,
		"model", c.cfg.VisionModel,
		"temp", c.cfg.Temperature,
		"image_bytes", len(imageBytes),
		"mime_type", mimeType,
	)

	body := map[string]any{
		"model":       c.cfg.VisionModel,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": llm.SystemPrompt},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": llm.BuildExtractionPrompt()},
				{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
			}},
		},
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		c.log.Error("llm.analyze.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ReceiptExtraction{}, err
	}

	content, err := completionContent(raw)
	if err != nil {
		c.log.Error("llm.analyze.empty_completion",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ReceiptExtraction{}, err
	}

	c.log.Info("llm.analyze.ok",
		"req_id", rid,
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return llm.ReceiptExtraction{Content: content, Raw: raw}, nil
}

// CompleteText implements llm.TextClient using the cheaper text-only model.
func (c *Client) CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	if !c.Configured() {
		return "", &llm.ProviderError{
			Kind:    llm.KindConfiguration,
			Message: "provider API key is not configured (set GROQ_API_KEY)",
		}
	}

	body := map[string]any{
		"model":       c.cfg.TextModel,
		"temperature": c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	if maxTokens > 0 {
		body["max_tokens"] = maxTokens
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		c.log.Error("llm.complete.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	content, err := completionContent(raw)
	if err != nil {
		return "", err
	}

	c.log.Info("llm.complete.ok",
		"req_id", rid,
		"model", c.cfg.TextModel,
		"content_bytes", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(content), nil
}

func (c *Client) post(ctx context.Context, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func(rc io.ReadCloser) {
		if cerr := rc.Close(); cerr != nil {
			c.log.Warn("llm.http.body_close_error", "error", cerr)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &llm.ProviderError{
			Kind:    llm.KindConnectivity,
			Message: "reading provider response: " + err.Error(),
		}
	}

	if resp.StatusCode/100 != 2 {
		return nil, statusError(resp.StatusCode, raw)
	}
	return raw, nil
}

// transportError maps a failed round trip to a timeout or connectivity kind.
func transportError(err error) *llm.ProviderError {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &llm.ProviderError{
			Kind:    llm.KindTimeout,
			Message: "provider request timed out: " + err.Error(),
		}
	}
	return &llm.ProviderError{
		Kind:    llm.KindConnectivity,
		Message: "provider connection failed: " + err.Error(),
	}
}

// statusError maps a non-2xx provider response to a typed failure.
func statusError(status int, body []byte) *llm.ProviderError {
	msg := providerMessage(body)
	switch status {
	case http.StatusUnauthorized:
		return &llm.ProviderError{Kind: llm.KindAuthentication, Status: status, Message: "provider rejected the API key", Body: string(body)}
	case http.StatusTooManyRequests:
		return &llm.ProviderError{Kind: llm.KindRateLimit, Status: status, Message: "provider rate limit exceeded", Body: string(body)}
	case http.StatusBadRequest:
		if msg == "" {
			msg = "provider rejected the request"
		}
		return &llm.ProviderError{Kind: llm.KindBadRequest, Status: status, Message: msg, Body: string(body)}
	default:
		if msg == "" {
			msg = fmt.Sprintf("provider returned status %d", status)
		}
		return &llm.ProviderError{Kind: llm.KindProvider, Status: status, Message: msg, Body: string(body)}
	}
}

// providerMessage digs the human-readable message out of an OpenAI-style
// error body, if there is one.
func providerMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Error.Message)
}

// completionContent pulls the first choice's message content out of a 2xx
// chat/completions payload.
func completionContent(raw []byte) (string, error) {
	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", &llm.ProviderError{
			Kind:    llm.KindProvider,
			Message: "undecodable provider response: " + err.Error(),
			Body:    string(raw),
		}
	}
	if len(cc.Choices) == 0 || strings.TrimSpace(cc.Choices[0].Message.Content) == "" {
		return "", &llm.ProviderError{
			Kind:    llm.KindEmptyResponse,
			Message: "provider returned no completion content",
			Body:    string(raw),
		}
	}
	return cc.Choices[0].Message.Content, nil
}
