package ollama

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ollama/ollama/api"
	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/logger"
	"github.com/spigell/offer-matcher/internal/utils"
	"go.uber.org/zap"
)

const (
	Provider = "ollama"

	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "qwen2.5:14b"

	defaultMaxLogLength = 200
)

// Client is an ai.Gateway backed by the Ollama API client.
// Every call uses its own connection and is bounded by ai.DefaultTimeout.
type Client struct {
	api *api.Client

	baseURL   string
	model     string
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Gateway = (*Client)(nil)

func New(baseURL, model string, maxLogLength int, l *zap.Logger) *Client {
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	l = logger.WithBackendFields(l, Provider, model)

	base, err := url.Parse(baseURL)
	if err != nil {
		l.Warn("invalid ollama base url, using the default", zap.String("base_url", baseURL), zap.Error(err))
		base, _ = url.Parse(DefaultBaseURL)
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: ai.DefaultTimeout,
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
	}

	return &Client{
		api:       api.NewClient(base, httpClient),
		baseURL:   baseURL,
		model:     model,
		logger:    l,
		maxLogLen: maxLogLength,
	}
}

func (c *Client) Provider() string { return Provider }

func (c *Client) Model() string { return c.model }

// Available reports whether the configured model is listed by the backend.
func (c *Client) Available(ctx context.Context) bool {
	list, err := c.api.List(ctx)
	if err != nil {
		c.logger.Error("cannot reach ollama", zap.String("base_url", c.baseURL), zap.Error(err))
		return false
	}

	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.Name == c.model {
			c.logger.Info("model is available")
			return true
		}
		names = append(names, m.Name)
	}

	c.logger.Warn("model is not pulled", zap.Strings("available_models", names))
	return false
}

// Generate joins the response fragments; a non-streamed call yields a single fragment.
func (c *Client) Generate(ctx context.Context, r ai.GenerateRequest) ai.Result {
	stream := r.Stream
	req := &api.GenerateRequest{
		Model:   c.model,
		Prompt:  r.Prompt,
		System:  r.System,
		Stream:  &stream,
		Options: options(r.Temperature, r.MaxTokens),
	}

	c.logger.Debug("generate request",
		zap.Bool("stream", r.Stream),
		zap.Int("prompt_length", utf8.RuneCountInString(r.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(r.Prompt, c.maxLogLen)),
	)

	var builder strings.Builder
	err := c.api.Generate(ctx, req, func(resp api.GenerateResponse) error {
		builder.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return c.failed("/api/generate", err)
	}

	text := builder.String()
	c.logger.Debug("generate response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", utils.TruncateForLog(text, c.maxLogLen)),
	)

	return ai.Success(text)
}

func (c *Client) Chat(ctx context.Context, r ai.ChatRequest) ai.Result {
	messages := make([]api.Message, len(r.Messages))
	for i, m := range r.Messages {
		messages[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options(r.Temperature, r.MaxTokens),
	}

	c.logger.Debug("chat request", zap.Int("messages", len(r.Messages)))

	var builder strings.Builder
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		builder.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return c.failed("/api/chat", err)
	}

	return ai.Success(builder.String())
}

func (c *Client) Embeddings(ctx context.Context, text string) []float64 {
	resp, err := c.api.Embeddings(ctx, &api.EmbeddingRequest{Model: c.model, Prompt: text})
	if err != nil {
		c.logger.Error("ollama embeddings failed", zap.Error(err))
		return []float64{}
	}
	if resp == nil || resp.Embedding == nil {
		return []float64{}
	}

	return resp.Embedding
}

// failed classifies an API client error. Non-success statuses carry the status code as detail.
func (c *Client) failed(path string, err error) ai.Result {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		c.logger.Error("ollama api error",
			zap.String("path", path),
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", utils.TruncateForLog(statusErr.ErrorMessage, c.maxLogLen)),
		)
		return ai.Failed(ai.FailureStatus, strconv.Itoa(statusErr.StatusCode))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		c.logger.Error("ollama request failed", zap.String("path", path), zap.Error(err))
		return ai.Failed(ai.FailureTransport, err.Error())
	}

	c.logger.Error("decoding ollama response", zap.String("path", path), zap.Error(err))
	return ai.Failed(ai.FailureDecode, err.Error())
}

func options(temperature float64, maxTokens int) map[string]any {
	opts := map[string]any{"temperature": temperature}
	if maxTokens > 0 {
		opts["num_predict"] = maxTokens
	}
	return opts
}
