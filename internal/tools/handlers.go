package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/matching"
	"github.com/spigell/offer-matcher/internal/resume"
	"go.uber.org/zap"
)

type ResumeParser interface {
	ParseText(text string) *resume.Record
	ParseFile(ctx context.Context, path string) (*resume.Record, error)
}

type CompanyProvider interface {
	Fetch(ctx context.Context, name, url string, includeRecruitment bool) (*company.Profile, error)
}

type Matcher interface {
	AnalyzeMatch(ctx context.Context, in matching.MatchInput) (*ai.Assessment, error)
	RecommendPositions(ctx context.Context, record *resume.Record, profile *company.Profile, topK int) (*ai.Recommendations, error)
	GenerateReport(assessment *ai.Assessment, format ai.ReportFormat) *ai.Report
}

// Services are the components the tools delegate to.
type Services struct {
	Resumes   ResumeParser
	Companies CompanyProvider
	Matcher   Matcher
}

var errResumeSourceRequired = fmt.Errorf("%w: 必须提供resume_path或resume_text之一", ErrInvalidArguments)

// NewOfferRegistry registers the offer analysis tools.
func NewOfferRegistry(s Services, l *zap.Logger) *Registry {
	r := NewRegistry(l)

	r.Register(scrapeCompanyDescriptor, s.scrapeCompanyInfo)
	r.Register(parseResumeDescriptor, s.parseResume)
	r.Register(analyzeMatchDescriptor, s.analyzeJobMatch)
	r.Register(recommendPositionsDescriptor, s.recommendPositions)
	r.Register(generateReportDescriptor, s.generateReport)

	return r
}

func (s Services) scrapeCompanyInfo(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		CompanyName        string `json:"company_name"`
		CompanyURL         string `json:"company_url"`
		IncludeRecruitment *bool  `json:"include_recruitment"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}

	includeRecruitment := true
	if in.IncludeRecruitment != nil {
		includeRecruitment = *in.IncludeRecruitment
	}

	LoggerFrom(ctx).Info("fetching company info", zap.String("company", in.CompanyName))

	profile, err := s.Companies.Fetch(ctx, in.CompanyName, in.CompanyURL, includeRecruitment)
	if err != nil {
		if errors.Is(err, company.ErrNameRequired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		}
		return nil, err
	}
	return profile, nil
}

func (s Services) parseResume(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ResumePath string `json:"resume_path"`
		ResumeText string `json:"resume_text"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}

	switch {
	case strings.TrimSpace(in.ResumePath) != "":
		LoggerFrom(ctx).Info("parsing resume file", zap.String("path", in.ResumePath))
		return s.Resumes.ParseFile(ctx, in.ResumePath)
	case strings.TrimSpace(in.ResumeText) != "":
		LoggerFrom(ctx).Info("parsing resume text")
		return s.Resumes.ParseText(in.ResumeText), nil
	default:
		return nil, errResumeSourceRequired
	}
}

func (s Services) analyzeJobMatch(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ResumeData      resume.Record   `json:"resume_data"`
		JobDescription  string          `json:"job_description"`
		CompanyInfo     company.Profile `json:"company_info"`
		UserPreferences ai.Preferences  `json:"user_preferences"`
	}
	if err := decode(args, &in); err != nil {
		return nil, err
	}

	return s.Matcher.AnalyzeMatch(ctx, matching.MatchInput{
		Resume:         &in.ResumeData,
		JobDescription: in.JobDescription,
		Company:        &in.CompanyInfo,
		Preferences:    in.UserPreferences,
	})
}

func (s Services) recommendPositions(ctx context.Context, args map[string]any) (any, error) {
	in := struct {
		ResumeData  resume.Record   `json:"resume_data"`
		CompanyInfo company.Profile `json:"company_info"`
		TopK        int             `json:"top_k"`
	}{TopK: matching.DefaultTopK}
	if err := decode(args, &in); err != nil {
		return nil, err
	}

	return s.Matcher.RecommendPositions(ctx, &in.ResumeData, &in.CompanyInfo, in.TopK)
}

func (s Services) generateReport(ctx context.Context, args map[string]any) (any, error) {
	in := struct {
		MatchResult ai.Assessment `json:"match_result"`
		Format      string        `json:"format"`
	}{Format: string(ai.FormatMarkdown)}
	if err := decode(args, &in); err != nil {
		return nil, err
	}

	LoggerFrom(ctx).Info("generating report", zap.String("format", in.Format))

	return s.Matcher.GenerateReport(&in.MatchResult, ai.ReportFormat(in.Format)), nil
}

// decode maps JSON arguments onto the json-tagged target, converting scalar types where needed.
func decode(args map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}
