package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/logger"
	"github.com/spigell/offer-matcher/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	Provider = "gemini"

	defaultModel          = "gemini-2.5-flash"
	defaultEmbeddingModel = "text-embedding-004"
	defaultMaxLogLength   = 200
)

// models is the subset of genai.Models used by the gateway.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Generator is a Gemini-backed ai.Gateway.
type Generator struct {
	models         models
	modelName      string
	embeddingModel string
	logger         *zap.Logger
	maxLogLen      int
}

var _ ai.Gateway = (*Generator)(nil)

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxLogLength int, l *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: ai.DefaultTimeout},
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, maxLogLength, l), nil
}

func newGenerator(m models, model string, maxLogLength int, l *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		models:         m,
		modelName:      model,
		embeddingModel: defaultEmbeddingModel,
		logger:         logger.WithBackendFields(l, Provider, model),
		maxLogLen:      maxLogLength,
	}
}

func (g *Generator) Provider() string { return Provider }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// Available reports whether the configured model can be resolved by the API.
func (g *Generator) Available(ctx context.Context) bool {
	if g == nil || g.models == nil {
		return false
	}

	m, err := g.models.Get(ctx, g.modelName, nil)
	if err != nil {
		g.logger.Error("checking gemini model", zap.Error(err))
		return false
	}

	return m != nil
}

func (g *Generator) Generate(ctx context.Context, r ai.GenerateRequest) ai.Result {
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: r.Prompt}},
	}}

	cfg := generationConfig(r.Temperature, r.MaxTokens)
	if system := strings.TrimSpace(r.System); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(r.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(r.Prompt, g.maxLogLen)),
	)

	return g.generate(ctx, contents, cfg)
}

// Chat maps "assistant" turns to the model role and folds "system" turns into the system instruction.
func (g *Generator) Chat(ctx context.Context, r ai.ChatRequest) ai.Result {
	cfg := generationConfig(r.Temperature, r.MaxTokens)

	contents := make([]*genai.Content, 0, len(r.Messages))
	var system []string
	for _, msg := range r.Messages {
		switch strings.ToLower(strings.TrimSpace(msg.Role)) {
		case "system":
			system = append(system, msg.Content)
		case "assistant", "model":
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: msg.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: msg.Content}}})
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n")}}}
	}

	return g.generate(ctx, contents, cfg)
}

func (g *Generator) Embeddings(ctx context.Context, text string) []float64 {
	if g == nil || g.models == nil {
		return []float64{}
	}

	resp, err := g.models.EmbedContent(ctx, g.embeddingModel, []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}}, nil)
	if err != nil {
		g.logger.Error("gemini embeddings failed", zap.Error(err))
		return []float64{}
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return []float64{}
	}

	values := resp.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}

func (g *Generator) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) ai.Result {
	if g == nil || g.models == nil {
		return ai.Failed(ai.FailureTransport, "gemini generator is not initialized")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		g.logger.Error("gemini generate content failed", zap.Error(err))

		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return ai.Failed(ai.FailureStatus, strconv.Itoa(apiErr.Code))
		}
		return ai.Failed(ai.FailureTransport, err.Error())
	}

	output := responseText(resp)
	if output == "" {
		return ai.Failed(ai.FailureDecode, "gemini api returned empty response")
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return ai.Success(output)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func generationConfig(temperature float64, maxTokens int) *genai.GenerateContentConfig {
	t := float32(temperature)
	cfg := &genai.GenerateContentConfig{Temperature: &t}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}
	return cfg
}
