// Package llm talks to an OpenAI-compatible chat endpoint to extract and
// verify contract metadata. The client only ever sees anonymized text.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"doctag/internal/model"
)

// Client wraps a primary and an optional fallback chat-completion endpoint
// with rate limiting and retries. Safe for concurrent use.
type Client struct {
	primary  *openai.Client
	fallback *openai.Client
	cfg      model.LLMConfig
	limiter  *rate.Limiter
}

// NewClient builds a client from config. The API key falls back to the
// OPENAI_API_KEY environment variable; a key is required even for local
// endpoints because the upstream client refuses empty credentials.
func NewClient(cfg model.LLMConfig) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("llm: API key is required (set llm.api_key or OPENAI_API_KEY)")
	}

	primary := newEndpoint(apiKey, cfg.BaseURL)

	var fallback *openai.Client
	if cfg.FallbackBaseURL != "" || cfg.FallbackModel != "" {
		url := cfg.FallbackBaseURL
		if url == "" {
			url = cfg.BaseURL
		}
		fallback = newEndpoint(apiKey, url)
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

func newEndpoint(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// IsAvailable checks connectivity with a lightweight model-list call.
func (c *Client) IsAvailable(ctx context.Context) bool {
	_, err := c.primary.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "llm: endpoint check failed: %v\n", err)
		return false
	}
	return true
}

// Complete sends one system+user exchange and returns the raw assistant
// text. Retries the primary endpoint with exponential backoff, then tries
// the fallback endpoint once per retry round if one is configured.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	maxRetries := c.cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		out, err := c.completeOnce(ctx, c.primary, c.cfg.Model, system, user)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if c.fallback != nil {
			fallbackModel := c.cfg.FallbackModel
			if fallbackModel == "" {
				fallbackModel = c.cfg.Model
			}
			out, err = c.completeOnce(ctx, c.fallback, fallbackModel, system, user)
			if err == nil {
				return out, nil
			}
			lastErr = err
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("llm: all attempts failed: %w", lastErr)
}

func (c *Client) completeOnce(ctx context.Context, client *openai.Client, chatModel, system, user string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxTokens := c.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}

	resp, err := client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
