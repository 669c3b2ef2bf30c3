package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/resume"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubGateway struct {
	available bool
	result    ai.Result
	requests  []ai.GenerateRequest
}

func (s *stubGateway) Available(context.Context) bool { return s.available }

func (s *stubGateway) Generate(_ context.Context, r ai.GenerateRequest) ai.Result {
	s.requests = append(s.requests, r)
	return s.result
}

func (s *stubGateway) Chat(context.Context, ai.ChatRequest) ai.Result { return s.result }

func (s *stubGateway) Embeddings(context.Context, string) []float64 { return []float64{} }

func (s *stubGateway) Provider() string { return "stub" }

func (s *stubGateway) Model() string { return "stub-model" }

func TestAnalyzeMatch(t *testing.T) {
	gateway := &stubGateway{available: true, result: ai.Success("总分：82\n优势：沟通能力强\n编程扎实")}
	engine := NewEngine(gateway, Config{Temperature: 0.7, MaxTokens: 2048}, zap.NewNop())

	assessment, err := engine.AnalyzeMatch(context.Background(), MatchInput{
		Resume:         &resume.Record{Skills: []string{"Go"}},
		JobDescription: "Go开发",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.OverallScore != 82 {
		t.Fatalf("expected score 82, got %d", assessment.OverallScore)
	}
	if len(gateway.requests) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gateway.requests))
	}

	req := gateway.requests[0]
	if req.Temperature != 0.7 || req.MaxTokens != 2048 {
		t.Fatalf("unexpected generation parameters: %+v", req)
	}
	if !strings.Contains(req.Prompt, "Go开发") {
		t.Fatalf("expected job description in prompt")
	}
}

func TestAnalyzeMatchLeavesPreviewsToGateway(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gateway := &stubGateway{available: true, result: ai.Success("总分：70")}
	engine := NewEngine(gateway, Config{}, zap.New(core))

	if _, err := engine.AnalyzeMatch(context.Background(), MatchInput{JobDescription: "Go开发"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if logs.Len() == 0 {
		t.Fatal("expected engine log entries")
	}
	for _, entry := range logs.All() {
		fields := entry.ContextMap()
		if _, ok := fields["prompt_preview"]; ok {
			t.Fatalf("unexpected prompt preview in %q", entry.Message)
		}
		if _, ok := fields["response_preview"]; ok {
			t.Fatalf("unexpected response preview in %q", entry.Message)
		}
	}
}

func TestAnalyzeMatchModelUnavailable(t *testing.T) {
	gateway := &stubGateway{available: false}
	engine := NewEngine(gateway, Config{}, nil)

	_, err := engine.AnalyzeMatch(context.Background(), MatchInput{})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if len(gateway.requests) != 0 {
		t.Fatalf("expected no generation call when model is unavailable")
	}
}

func TestAnalyzeMatchGenerationFailure(t *testing.T) {
	gateway := &stubGateway{available: true, result: ai.Failed(ai.FailureStatus, "500")}
	engine := NewEngine(gateway, Config{}, nil)

	_, err := engine.AnalyzeMatch(context.Background(), MatchInput{})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if !strings.Contains(err.Error(), "错误: 500") {
		t.Fatalf("expected error marker in message, got %v", err)
	}
}

func TestRecommendPositionsWithoutPositions(t *testing.T) {
	gateway := &stubGateway{available: true}
	engine := NewEngine(gateway, Config{}, nil)

	for _, profile := range []*company.Profile{nil, company.NewProfile("示例公司", "")} {
		got, err := engine.RecommendPositions(context.Background(), &resume.Record{}, profile, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Items == nil || len(got.Items) != 0 {
			t.Fatalf("expected empty recommendations, got %+v", got.Items)
		}
		if got.Message != NoPositionsMessage {
			t.Fatalf("unexpected message: %q", got.Message)
		}
	}

	if len(gateway.requests) != 0 {
		t.Fatalf("expected no generation call")
	}
}

func TestRecommendPositions(t *testing.T) {
	gateway := &stubGateway{available: true, result: ai.Success("1. Python后端工程师 - 匹配度：88 - 理由：Python经验丰富")}
	engine := NewEngine(gateway, Config{Temperature: 0.9, MaxTokens: 4096}, nil)

	profile := company.NewProfile("示例公司", "https://example.com")
	profile.Positions = company.SamplePositions()

	got, err := engine.RecommendPositions(context.Background(), &resume.Record{Skills: []string{"Python"}}, profile, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Items) != 1 || got.Items[0].MatchScore != 88 || got.Items[0].Reason != "Python经验丰富" {
		t.Fatalf("unexpected recommendations: %+v", got.Items)
	}
	if got.RawResponse == "" {
		t.Fatalf("expected raw response to be kept")
	}

	req := gateway.requests[0]
	if req.Temperature != recommendTemperature || req.MaxTokens != recommendMaxTokens {
		t.Fatalf("unexpected generation parameters: %+v", req)
	}
	if !strings.Contains(req.Prompt, "最适合候选人的 3 个岗位") {
		t.Fatalf("expected default top k in prompt")
	}
}

func TestRecommendPositionsGenerationFailure(t *testing.T) {
	gateway := &stubGateway{available: true, result: ai.Failed(ai.FailureTransport, "connection refused")}
	engine := NewEngine(gateway, Config{}, nil)

	profile := company.NewProfile("示例公司", "")
	profile.Positions = company.SamplePositions()

	if _, err := engine.RecommendPositions(context.Background(), nil, profile, 1); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}
