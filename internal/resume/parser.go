package resume

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TextExtractor converts a stored file into plain text and reports the format it used.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (text string, format string, err error)
}

type Parser struct {
	extractor TextExtractor
	logger    *zap.Logger
}

func NewParser(extractor TextExtractor, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{extractor: extractor, logger: logger}
}

// ParseText never fails; fields that cannot be found are left empty.
func (p *Parser) ParseText(text string) *Record {
	record := &Record{
		RawText:           text,
		PersonalInfo:      ExtractPersonalInfo(text),
		Education:         ExtractEducation(text),
		WorkExperience:    ExtractWorkExperience(text),
		ProjectExperience: ExtractProjectExperience(text),
		Skills:            ExtractSkills(text),
		Certificates:      ExtractCertificates(text),
		Summary:           ExtractSummary(text),
	}

	if section := WorkSection(text); section != "" {
		p.logger.Debug("work experience section found; items are not itemized", zap.Int("section_length", len(section)))
	}
	if section := ProjectSection(text); section != "" {
		p.logger.Debug("project experience section found; items are not itemized", zap.Int("section_length", len(section)))
	}

	p.logger.Debug("parsed resume text",
		zap.Int("text_length", len(text)),
		zap.Int("skills", len(record.Skills)),
		zap.Int("education", len(record.Education)),
	)

	return record
}

// ParseFile extracts text from the file and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Record, error) {
	if p.extractor == nil {
		return nil, fmt.Errorf("no document extractor configured")
	}

	text, format, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	record := p.ParseText(text)
	record.FilePath = path
	record.FileFormat = format

	p.logger.Info("parsed resume file", zap.String("path", path), zap.String("format", format))

	return record, nil
}
