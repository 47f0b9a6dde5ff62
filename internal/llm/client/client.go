package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"mdformat/internal/models"
)

// Temperature is fixed low so the model sticks to reformatting.
const Temperature = 0.1

const (
	defaultMaxTokens = 16384
	defaultReferer   = "http://localhost/mdformat"
	defaultTitle     = "mdformat"
)

// Options configures a ChatClient. Zero values fall back to defaults; a zero
// Timeout leaves the deadline to the caller's context and the transport.
type Options struct {
	HTTPClient *http.Client
	MaxTokens  int
	Timeout    time.Duration
	Referer    string
	Title      string
}

// ChatClient turns a document body into a chat-completion request and sends it.
type ChatClient struct {
	httpClient *http.Client
	template   prompt.ChatTemplate
	maxTokens  int
	timeout    time.Duration
	referer    string
	title      string
}

func NewChatClient(opts Options) (*ChatClient, error) {
	system, err := loadPrompt("system")
	if err != nil {
		return nil, err
	}
	user, err := loadPrompt("user")
	if err != nil {
		return nil, err
	}

	c := &ChatClient{
		httpClient: opts.HTTPClient,
		template: prompt.FromMessages(schema.FString,
			schema.SystemMessage(system),
			schema.UserMessage(user),
		),
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
		referer:   opts.Referer,
		title:     opts.Title,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		}
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	if c.referer == "" {
		c.referer = defaultReferer
	}
	if c.title == "" {
		c.title = defaultTitle
	}
	return c, nil
}

// MaxTokens returns the max_tokens value sent with each request.
func (c *ChatClient) MaxTokens() int {
	return c.maxTokens
}

// BuildRequest renders the system and user prompts around body. The body is
// substituted as a template value, so braces in it are sent untouched.
func (c *ChatClient) BuildRequest(ctx context.Context, model, body string) (*models.ChatRequest, error) {
	msgs, err := c.template.Format(ctx, map[string]any{"content": body})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	req := &models.ChatRequest{
		Model:       model,
		Messages:    make([]models.ChatMessage, 0, len(msgs)),
		Temperature: Temperature,
		MaxTokens:   c.maxTokens,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, models.ChatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return req, nil
}

// Complete POSTs req to settings.APIURL once and returns
// choices[0].message.content verbatim.
func (c *ChatClient) Complete(ctx context.Context, settings models.Settings, req *models.ChatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+settings.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", c.referer)
	httpReq.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteAPIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return extractContent(respBody)
}

// Format builds the request for body and sends it.
func (c *ChatClient) Format(ctx context.Context, settings models.Settings, body string) (string, error) {
	req, err := c.BuildRequest(ctx, settings.Model, body)
	if err != nil {
		return "", err
	}
	return c.Complete(ctx, settings, req)
}

func extractContent(body []byte) (string, error) {
	var r models.ChatResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	if len(r.Choices) == 0 {
		return "", &MalformedResponseError{Reason: "missing choices"}
	}
	if r.Choices[0].Message == nil {
		return "", &MalformedResponseError{Reason: "missing choices[0].message"}
	}
	return r.Choices[0].Message.Content, nil
}
