// Package llm is the boundary adapter to the external text-generation service.
// It performs exactly one completion call per Generate invocation; retry
// policy, if any, belongs to callers.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindServiceUnavailable Kind = "service_unavailable"
	KindQuotaExceeded      Kind = "quota_exceeded"
	KindMalformedResponse  Kind = "malformed_response"
)

// Error is a classified generation failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Generator is the single-shot completion contract consumed by the pipeline.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request carries one completion call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Config selects and configures the completion provider.
type Config struct {
	Provider string `yaml:"provider"` // "openai" (default) | "anthropic"
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

const (
	defaultOpenAIModel    = "gpt-4.1"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// Client dispatches completion calls to the configured provider.
type Client struct {
	cfg       Config
	openai    openaiclient.Client
	anthropic anthropicclient.Client
}

func New(cfg Config) *Client {
	c := &Client{cfg: cfg}
	if isAnthropic(cfg.Provider) {
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		c.anthropic = anthropicclient.NewClient(opts...)
		return c
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	c.openai = openaiclient.NewClient(opts...)
	return c
}

// Generate performs one completion call and returns the generated text.
// Failures come back as *Error with a stable Kind.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if isAnthropic(c.cfg.Provider) {
		return c.generateAnthropic(ctx, req)
	}
	return c.generateOpenAI(ctx, req)
}

func (c *Client) generateOpenAI(ctx context.Context, req Request) (string, error) {
	model := strings.TrimSpace(c.cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openaiclient.SystemMessage(req.System))
	}
	messages = append(messages, openaiclient.UserMessage(req.Prompt))

	resp, err := c.openai.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model:               openaiclient.ChatModel(model),
		Messages:            messages,
		MaxCompletionTokens: openaiclient.Int(req.MaxTokens),
		Temperature:         openaiclient.Float(req.Temperature),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.New("completion has no choices")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.New("completion text is empty")}
	}
	return text, nil
}

func (c *Client) generateAnthropic(ctx context.Context, req Request) (string, error) {
	model := strings.TrimSpace(c.cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}

	params := anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(model),
		MaxTokens: req.MaxTokens,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropicclient.Float(req.Temperature),
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropicclient.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.anthropic.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var full strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(full.String())
	if text == "" {
		return "", &Error{Kind: KindMalformedResponse, Err: errors.New("completion text is empty")}
	}
	return text, nil
}

// classify maps provider errors to the gateway taxonomy. HTTP 429 means the
// account hit its quota or rate ceiling; everything else the service could not
// serve.
func classify(err error) *Error {
	status := 0

	var oerr *openaiclient.Error
	if errors.As(err, &oerr) {
		status = oerr.StatusCode
	}
	var aerr *anthropicclient.Error
	if errors.As(err, &aerr) {
		status = aerr.StatusCode
	}

	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindQuotaExceeded, Err: err}
	}
	return &Error{Kind: KindServiceUnavailable, Err: err}
}

func isAnthropic(provider string) bool {
	return strings.EqualFold(strings.TrimSpace(provider), "anthropic")
}
