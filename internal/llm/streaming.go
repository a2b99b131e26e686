package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/service"
)

// streamingClient implements Client against any OpenAI-compatible chat
// completion endpoint with server-sent-event streaming.
type streamingClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func newStreamingClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: LLM API key (set llm.api_key in the config file or WALLETFY_LLM_API_KEY)", common.ErrMissingConfig)
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &streamingClient{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			// No overall timeout: streams stay open for the duration of a
			// completion. Cancellation comes from the request context.
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// chatRequest is the OpenAI-compatible completion request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// streamChunk is one SSE data payload from a streamed completion.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ChatStream sends the conversation and accumulates the streamed reply,
// invoking onDelta per content fragment. Transient failures before the first
// delta are retried; once content has been relayed the stream is not
// restarted, so the caller never sees duplicated text.
func (c *streamingClient) ChatStream(ctx context.Context, messages []Message, onDelta func(string)) (string, error) {
	var full strings.Builder

	err := common.WithRetry(ctx, func() error {
		return c.streamOnce(ctx, messages, onDelta, &full)
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: 10 * time.Second})

	return full.String(), err
}

func (c *streamingClient) streamOnce(ctx context.Context, messages []Message, onDelta func(string), full *strings.Builder) error {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Stream:      true,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to marshal request: %w", err), Retryable: false}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(string(body)))
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w (status %d)", common.ErrRateLimit, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &common.RetryableError{
			Err:       fmt.Errorf("LLM API error (status %d): %s", resp.StatusCode, string(errBody)),
			Retryable: false,
		}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Malformed SSE payloads are skipped, not fatal.
			continue
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			full.WriteString(content)
			if onDelta != nil {
				onDelta(content)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		// Content already reached the caller; restarting would duplicate it.
		return &common.RetryableError{Err: fmt.Errorf("stream interrupted: %w", err), Retryable: false}
	}

	return nil
}
