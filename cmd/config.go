package cmd

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/document"
	"github.com/spigell/offer-matcher/internal/matching"
)

const (
	providerOllama = "ollama"
	providerGemini = "gemini"
)

type Config struct {
	Debug  bool          `mapstructure:"debug"`
	JSON   bool          `mapstructure:"json"`
	LLM    *LLMConfig    `mapstructure:"llm" validate:"required"`
	Resume *ResumeConfig `mapstructure:"resume" validate:"required"`
	// Company page fetching and caching.
	Company *CompanyConfig `mapstructure:"company" validate:"required"`
	Cache   *CacheConfig   `mapstructure:"cache" validate:"required"`
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=ollama gemini"`
	Temperature  float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int           `mapstructure:"max-tokens" validate:"gt=0"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	Ollama       *OllamaConfig `mapstructure:"ollama" validate:"required"`
	Gemini       *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base-url" validate:"required,url"`
	Model   string `mapstructure:"model" validate:"required"`
}

type GeminiConfig struct {
	Model      string `mapstructure:"model" validate:"required"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type ResumeConfig struct {
	MaxSizeMB      int      `mapstructure:"max-size-mb" validate:"gt=0"`
	AllowedFormats []string `mapstructure:"allowed-formats" validate:"min=1,dive,oneof=pdf docx doc txt"`
}

type CompanyConfig struct {
	UserAgent string        `mapstructure:"user-agent" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Delay     time.Duration `mapstructure:"delay" validate:"gte=0"`
}

type CacheConfig struct {
	RedisURL string        `mapstructure:"redis-url" validate:"omitempty,url"`
	Expiry   time.Duration `mapstructure:"expiry" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", providerOllama)
	v.SetDefault("llm.temperature", matching.DefaultTemperature)
	v.SetDefault("llm.max-tokens", matching.DefaultMaxTokens)
	v.SetDefault("llm.max-log-length", 200)
	v.SetDefault("llm.ollama.base-url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "qwen2.5:14b")
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.gemini.api-key-file", "")

	v.SetDefault("resume.max-size-mb", document.DefaultMaxSizeMB)
	v.SetDefault("resume.allowed-formats", document.DefaultAllowedFormats)

	v.SetDefault("company.user-agent", company.DefaultUserAgent)
	v.SetDefault("company.timeout", company.DefaultTimeout)
	v.SetDefault("company.delay", company.DefaultDelay)

	v.SetDefault("cache.redis-url", "")
	v.SetDefault("cache.expiry", company.DefaultCacheExpiry)
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if config == nil {
		return nil, fmt.Errorf("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
