// Package ai provides the collective's inference boundary: a single
// synchronous Generate call with a bounded timeout, plus the phase and
// review collaborators built on top of it. Failures never propagate as
// crashes; callers receive a soft Result status.
package ai

import (
	"context"
	"errors"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Result statuses.
const (
	StatusOK       = "ok"
	StatusTimeout  = "timeout"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

// Result is the outcome of one inference call. Text is empty unless Status
// is StatusOK.
type Result struct {
	Text   string
	Status string
}

// Generator is the inference contract collaborators depend on. Tests install
// a deterministic mock.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) Result
}

// LLMConfig holds configuration for LLM interactions.
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// DefaultLLMConfig returns the standard LLM configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       openai.GPT3Dot5Turbo,
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}

// Client wraps the OpenAI API behind the Generator contract. A client built
// without an API key is disabled and reports StatusDisabled from every call.
type Client struct {
	api    *openai.Client
	config LLMConfig
}

// NewClient creates an inference client. An empty apiKey yields a disabled
// client rather than an error, so a collective can run inference-free.
func NewClient(apiKey string, config LLMConfig) *Client {
	if config.Model == "" {
		config = DefaultLLMConfig()
	}
	if apiKey == "" {
		log.Println("Warning: inference API key not set, inference disabled")
		return &Client{config: config}
	}
	return &Client{api: openai.NewClient(apiKey), config: config}
}

// Generate sends one prompt and returns the completion text. Timeouts and
// API errors surface as soft statuses, never as panics or fatal errors.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) Result {
	if c.api == nil {
		return Result{Status: StatusDisabled}
	}
	if maxTokens <= 0 {
		maxTokens = c.config.MaxTokens
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Status: StatusTimeout}
		}
		log.Printf("ai: inference call failed: %v", err)
		return Result{Status: StatusError}
	}
	if len(resp.Choices) == 0 {
		return Result{Status: StatusError}
	}
	return Result{Text: resp.Choices[0].Message.Content, Status: StatusOK}
}
