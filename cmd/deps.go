package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/ai/gemini"
	"github.com/spigell/offer-matcher/internal/ai/ollama"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/document"
	"github.com/spigell/offer-matcher/internal/logger"
	"github.com/spigell/offer-matcher/internal/matching"
	"github.com/spigell/offer-matcher/internal/resume"
	"github.com/spigell/offer-matcher/internal/secrets"
	"go.uber.org/zap"
)

// deps holds the components shared by the commands.
type deps struct {
	config    *Config
	logger    *zap.Logger
	gateway   ai.Gateway
	parser    *resume.Parser
	companies *company.Provider
	engine    *matching.Engine

	closers []func() error
}

// newLogger builds the process logger. output is a zap sink such as "stdout" or "stderr".
func newLogger(output string) (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: output,
	})
}

func newDeps(ctx context.Context, config *Config, l *zap.Logger) (*deps, error) {
	d := &deps{config: config, logger: l}

	gateway, err := newGateway(ctx, config.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("building llm gateway: %w", err)
	}
	d.gateway = gateway

	d.parser = newResumeParser(ctx, config.Resume, l)

	var cache company.Cache
	if url := strings.TrimSpace(config.Cache.RedisURL); url != "" {
		redisCache, err := company.NewRedisCache(url, config.Cache.Expiry)
		if err != nil {
			return nil, fmt.Errorf("building company cache: %w", err)
		}
		cache = redisCache
		d.closers = append(d.closers, redisCache.Close)
	}

	d.companies = company.NewProvider(company.Config{
		UserAgent: config.Company.UserAgent,
		Timeout:   config.Company.Timeout,
		Delay:     config.Company.Delay,
	}, cache, l.Named("company"))

	d.engine = matching.NewEngine(gateway, matching.Config{
		Temperature: config.LLM.Temperature,
		MaxTokens:   config.LLM.MaxTokens,
	}, logger.WithBackendFields(l.Named("matching"), gateway.Provider(), gateway.Model()))

	return d, nil
}

// newResumeParser builds the extractor and parser only; parsing needs no backend or cache.
func newResumeParser(ctx context.Context, cfg *ResumeConfig, l *zap.Logger) *resume.Parser {
	extractor := document.New(ctx, document.Config{
		MaxSizeMB:      cfg.MaxSizeMB,
		AllowedFormats: cfg.AllowedFormats,
	}, l.Named("document"))
	return resume.NewParser(extractor, l.Named("resume"))
}

func (d *deps) Close() {
	for _, c := range d.closers {
		if err := c(); err != nil {
			d.logger.Warn("closing resource", zap.Error(err))
		}
	}
}

func newGateway(ctx context.Context, cfg *LLMConfig, l *zap.Logger) (ai.Gateway, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", providerOllama:
		return ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.MaxLogLength, l), nil
	case providerGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			Env:  "GEMINI_API_KEY",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set llm.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.MaxLogLength, l)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
