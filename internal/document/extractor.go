package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatDOC  = "doc"
	FormatTXT  = "txt"

	DefaultMaxSizeMB = 10
)

var DefaultAllowedFormats = []string{FormatPDF, FormatDOCX, FormatDOC, FormatTXT}

var (
	ErrNotFound          = errors.New("file not found")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUndecodable       = errors.New("text is neither utf-8 nor gbk")
)

type Config struct {
	MaxSizeMB      int
	AllowedFormats []string
}

// Extractor turns stored résumé files into plain text. It only reads files.
type Extractor struct {
	maxSize int64
	allowed map[string]bool
	logger  *zap.Logger

	pdfStrategies []pdfStrategy
}

func New(ctx context.Context, cfg Config, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxSizeMB := cfg.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}

	formats := cfg.AllowedFormats
	if len(formats) == 0 {
		formats = DefaultAllowedFormats
	}

	allowed := make(map[string]bool, len(formats))
	for _, f := range formats {
		allowed[normalizeFormat(f)] = true
	}

	return &Extractor{
		maxSize:       int64(maxSizeMB) * 1024 * 1024,
		allowed:       allowed,
		logger:        logger,
		pdfStrategies: defaultPDFStrategies(ctx, logger),
	}
}

// FormatOf returns the format declared by the file extension.
func FormatOf(path string) string {
	return normalizeFormat(filepath.Ext(path))
}

// Extract reads the file and returns its text together with the format used.
// Missing, oversized and unsupported files fail before any parsing.
// A PDF or Word file that cannot be parsed yields empty text rather than an error.
func (e *Extractor) Extract(ctx context.Context, path string) (string, string, error) {
	format := FormatOf(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", format, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", format, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", format, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	if info.Size() > e.maxSize {
		return "", format, fmt.Errorf("%w: %.2fMB (max %dMB)", ErrFileTooLarge,
			float64(info.Size())/(1024*1024), e.maxSize/(1024*1024))
	}

	if !e.allowed[format] {
		return "", format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var text string
	switch format {
	case FormatPDF:
		text = e.extractPDF(ctx, path)
	case FormatDOCX, FormatDOC:
		text, err = extractDOCX(path)
		if err != nil {
			e.logger.Error("parsing word document", zap.String("path", path), zap.Error(err))
			text, err = "", nil
		}
	case FormatTXT:
		text, err = extractText(path)
	default:
		return "", format, fmt.Errorf("%w: no parser for %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", format, err
	}

	e.logger.Debug("extracted document text",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("length", len(text)),
	)

	return text, format, nil
}

func normalizeFormat(f string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f)), ".")
}
