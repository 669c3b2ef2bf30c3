package company

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 30 * time.Second
	DefaultDelay     = time.Second

	maxPageSize = 2 << 20
)

var ErrNameRequired = errors.New("company name is required")

type Config struct {
	UserAgent string
	Timeout   time.Duration
	// Delay is the minimum interval between two page fetches.
	Delay time.Duration
}

// Cache stores fetched profiles by company name.
type Cache interface {
	Get(ctx context.Context, name string) (*Profile, bool, error)
	Set(ctx context.Context, name string, profile *Profile) error
}

// Provider gathers company profiles from public pages.
type Provider struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	cache     Cache
	knownURLs map[string]string
	logger    *zap.Logger
}

func NewProvider(cfg Config, cache Cache, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}

	return &Provider{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
		cache:     cache,
		knownURLs: KnownURLs,
		logger:    logger,
	}
}

// Fetch builds the profile for name. When url is empty it is looked up among well-known companies.
// Page failures leave basic_info empty and never fail the call.
func (p *Provider) Fetch(ctx context.Context, name, url string, includeRecruitment bool) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	profile := p.cached(ctx, name)
	if profile == nil {
		profile = p.load(ctx, name, url)
	}

	profile.Positions = []Position{}
	if includeRecruitment && profile.URL != "" {
		profile.Positions = SamplePositions()
	}

	p.logger.Info("fetched company profile", zap.String("company", name), zap.Int("positions", len(profile.Positions)))

	return profile, nil
}

// load resolves the url and reads the company page. Only profiles with a fetched page are cached.
func (p *Provider) load(ctx context.Context, name, url string) *Profile {
	url = strings.TrimSpace(url)
	if url == "" {
		url = p.knownURLs[name]
		p.logger.Info("resolved company url", zap.String("company", name), zap.String("url", url))
	}

	profile := NewProfile(name, url)
	if url == "" {
		p.logger.Warn("no url known for company", zap.String("company", name))
		return profile
	}

	info, err := p.basicInfo(ctx, url)
	if err != nil {
		p.logger.Error("fetching company page", zap.String("company", name), zap.String("url", url), zap.Error(err))
		return profile
	}

	profile.BasicInfo = info
	p.store(ctx, name, profile)

	return profile
}

func (p *Provider) basicInfo(ctx context.Context, url string) (BasicInfo, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return BasicInfo{}, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return BasicInfo{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return BasicInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BasicInfo{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return summarizePage(io.LimitReader(resp.Body, maxPageSize))
}

func (p *Provider) cached(ctx context.Context, name string) *Profile {
	if p.cache == nil {
		return nil
	}

	profile, ok, err := p.cache.Get(ctx, name)
	if err != nil {
		p.logger.Warn("reading company cache", zap.String("company", name), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	p.logger.Debug("company profile served from cache", zap.String("company", name))
	return profile
}

func (p *Provider) store(ctx context.Context, name string, profile *Profile) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, name, profile); err != nil {
		p.logger.Warn("writing company cache", zap.String("company", name), zap.Error(err))
	}
}
