package matching

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/resume"
	"go.uber.org/zap"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048

	recommendTemperature = 0.5
	recommendMaxTokens   = 1024

	NoPositionsMessage = "该公司暂无招聘岗位信息"
)

var (
	ErrModelUnavailable = errors.New("model unavailable: make sure the backend is running and the model has been pulled")
	ErrGeneration       = errors.New("generation failed")
)

type Config struct {
	Temperature float64
	MaxTokens   int
}

// Engine runs the prompt, generation and interpretation stages for each analysis operation.
type Engine struct {
	gateway     ai.Gateway
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

func NewEngine(gateway ai.Gateway, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	return &Engine{
		gateway:     gateway,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// AnalyzeMatch checks model availability before generating, so an absent backend costs no generation call.
func (e *Engine) AnalyzeMatch(ctx context.Context, in MatchInput) (*ai.Assessment, error) {
	if !e.gateway.Available(ctx) {
		return nil, fmt.Errorf("%w (%s %s)", ErrModelUnavailable, e.gateway.Provider(), e.gateway.Model())
	}

	prompt := RenderMatchPrompt(in)

	e.logger.Info("starting match analysis")
	raw, err := e.generate(ctx, ai.GenerateRequest{
		Prompt:      prompt,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	assessment := InterpretMatch(raw)
	e.logger.Info("match analysis finished", zap.Int("overall_score", assessment.OverallScore))

	return assessment, nil
}

// RecommendPositions ranks the company's open positions for the candidate.
// A company without positions yields an empty list and an explanatory message.
func (e *Engine) RecommendPositions(ctx context.Context, record *resume.Record, profile *company.Profile, topK int) (*ai.Recommendations, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var positions []company.Position
	if profile != nil {
		positions = profile.Positions
	}
	if len(positions) == 0 {
		return &ai.Recommendations{Items: []ai.PositionRecommendation{}, Message: NoPositionsMessage}, nil
	}

	e.logger.Info("starting position recommendation", zap.Int("top_k", topK), zap.Int("positions", len(positions)))
	raw, err := e.generate(ctx, ai.GenerateRequest{
		Prompt:      RenderRecommendPrompt(record, positions, topK),
		Temperature: recommendTemperature,
		MaxTokens:   recommendMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &ai.Recommendations{
		Items:       InterpretRecommendations(raw, positions, topK),
		RawResponse: raw,
	}, nil
}

func (e *Engine) GenerateReport(assessment *ai.Assessment, format ai.ReportFormat) *ai.Report {
	report := GenerateReport(assessment, format)
	e.logger.Info("report generated", zap.String("format", string(report.Format)), zap.Int("length", len(report.Content)))
	return report
}

// generate returns the reply text. Prompt and reply previews are logged by the gateway.
func (e *Engine) generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	e.logger.Debug("generate request", zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)))

	result := e.gateway.Generate(ctx, req)
	if !result.OK() {
		e.logger.Error("generation failed", zap.String("kind", string(result.Failure.Kind)), zap.String("detail", result.Failure.Detail))
		return "", fmt.Errorf("%w: %s", ErrGeneration, result.String())
	}

	e.logger.Debug("generate response", zap.Int("response_length", utf8.RuneCountInString(result.Text)))

	return result.Text, nil
}
