// Package llm provides the OpenAI-backed email analysis adapter.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"quotable_server/core/domain"
	"quotable_server/core/port/out"
	"quotable_server/pkg/apperr"
)

const defaultModel = "gpt-4o"

// Client implements out.IntentAnalyzer with chat completions in JSON mode.
// Calls run behind a circuit breaker: classification is best-effort, so when
// the provider is down the breaker fails fast instead of holding up the read
// path with connection timeouts.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	breaker     *gobreaker.CircuitBreaker
}

// ClientConfig for the analysis client.
type ClientConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates the analysis client.
func NewClient(cfg ClientConfig) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2048
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "llm",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
		timeout:     timeout,
		breaker:     breaker,
	}
}

// ClassifyIntent decides whether the email is a customer request.
func (c *Client) ClassifyIntent(ctx context.Context, subject, body string) (*domain.IntentResult, error) {
	content, err := c.completeJSON(ctx, customerRequestSystemPrompt, formatCustomerRequestPrompt(subject, body))
	if err != nil {
		return nil, err
	}

	var result domain.IntentResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse intent response: %w", err)
	}
	return &result, nil
}

// ExtractProducts pulls structured line items out of the email.
func (c *Client) ExtractProducts(ctx context.Context, subject, body string) (*domain.ProductExtraction, error) {
	content, err := c.completeJSON(ctx, productExtractionSystemPrompt, formatProductExtractionPrompt(subject, body))
	if err != nil {
		return nil, err
	}

	var result domain.ProductExtraction
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return &result, nil
}

// completeJSON runs one chat completion in JSON mode behind the breaker.
func (c *Client) completeJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion response")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", apperr.Upstream("llm", err.Error()).WithError(err)
	}

	return content.(string), nil
}

var _ out.IntentAnalyzer = (*Client)(nil)
