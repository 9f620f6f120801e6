package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/amberin/jobradar/internal/model"
	"github.com/amberin/jobradar/internal/ratelimit"
)

// Provider selects which scoring-oracle backend the client talks to.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGroq       Provider = "groq"
	ProviderAnthropic  Provider = "anthropic"
)

const anthropicVersion = "2023-06-01"

// Options carries the resolved provider settings threaded in from config.
type Options struct {
	Provider    Provider
	APIKey      string
	BaseURL     string // empty means the provider's default
	Model       string
	Temperature float64
}

// protocol pairs a request builder with a response content path for one
// provider family. Adding a provider is a one-entry change to the table.
type protocol struct {
	defaultBaseURL string
	endpoint       string
	buildBody      func(opts Options, prompt, system string) map[string]any
	setAuth        func(req *http.Request, apiKey string)
	contentPath    string // gjson path to the raw text in the response
}

var protocols = map[Provider]protocol{
	ProviderOpenAI: {
		defaultBaseURL: "https://api.openai.com/v1",
		endpoint:       "/chat/completions",
		buildBody:      chatCompletionBody,
		setAuth:        bearerAuth,
		contentPath:    "choices.0.message.content",
	},
	ProviderOpenRouter: {
		defaultBaseURL: "https://openrouter.ai/api/v1",
		endpoint:       "/chat/completions",
		buildBody:      chatCompletionBody,
		setAuth:        bearerAuth,
		contentPath:    "choices.0.message.content",
	},
	ProviderGroq: {
		defaultBaseURL: "https://api.groq.com/openai/v1",
		endpoint:       "/chat/completions",
		buildBody:      chatCompletionBody,
		setAuth:        bearerAuth,
		contentPath:    "choices.0.message.content",
	},
	ProviderAnthropic: {
		defaultBaseURL: "https://api.anthropic.com",
		endpoint:       "/v1/messages",
		buildBody:      anthropicBody,
		setAuth:        anthropicAuth,
		contentPath:    "content.0.text",
	},
}

// KnownProvider reports whether p has a protocol entry.
func KnownProvider(p Provider) bool {
	_, ok := protocols[p]
	return ok
}

// chatCompletionBody builds the OpenAI-compatible request envelope:
// role-tagged messages with JSON-object response mode.
func chatCompletionBody(opts Options, prompt, system string) map[string]any {
	return map[string]any{
		"model": opts.Model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
		"temperature":     opts.Temperature,
		"response_format": map[string]string{"type": "json_object"},
	}
}

// anthropicBody builds the Anthropic messages envelope: system is a separate
// field, max_tokens is mandatory.
func anthropicBody(opts Options, prompt, system string) map[string]any {
	return map[string]any{
		"model":      opts.Model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"system":      system,
		"temperature": opts.Temperature,
	}
}

func bearerAuth(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

func anthropicAuth(req *http.Request, apiKey string) {
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
}

// Client invokes the configured scoring-oracle backend.
type Client struct {
	opts       Options
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewClient creates a client for the provider named in opts. The limiter
// paces consecutive oracle calls; pass nil to disable pacing.
func NewClient(opts Options, httpClient *http.Client, limiter *ratelimit.Limiter) *Client {
	return &Client{opts: opts, httpClient: httpClient, limiter: limiter}
}

// Invoke sends prompt (with the given system instruction) to the configured
// provider and returns the raw response text. Empty content is a hard
// failure regardless of provider.
func (c *Client) Invoke(ctx context.Context, prompt, system string) (string, error) {
	proto, ok := protocols[c.opts.Provider]
	if !ok {
		return "", fmt.Errorf("unknown scoring provider %q", c.opts.Provider)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, string(c.opts.Provider)); err != nil {
			return "", err
		}
	}

	body, err := json.Marshal(proto.buildBody(c.opts, prompt, system))
	if err != nil {
		return "", fmt.Errorf("marshal oracle request: %w", err)
	}

	baseURL := c.opts.BaseURL
	if baseURL == "" {
		baseURL = proto.defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+proto.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	proto.setAuth(req, c.opts.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.TransportError{Source: string(c.opts.Provider), Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read oracle response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &model.TransportError{
			Source:     string(c.opts.Provider),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("oracle returned HTTP %d: %s", resp.StatusCode, string(respBytes)),
		}
	}

	content := gjson.GetBytes(respBytes, proto.contentPath).String()
	if content == "" {
		return "", fmt.Errorf("oracle returned empty content (provider %s)", c.opts.Provider)
	}

	return content, nil
}
