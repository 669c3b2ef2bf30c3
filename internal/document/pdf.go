package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	einopdf "github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/dslipak/pdf"
	"go.uber.org/zap"
)

type pdfStrategy struct {
	name    string
	extract func(ctx context.Context, path string) (string, error)
}

// defaultPDFStrategies returns the page-text parser first and the raw glyph reader second.
func defaultPDFStrategies(ctx context.Context, logger *zap.Logger) []pdfStrategy {
	strategies := make([]pdfStrategy, 0, 2)

	parser, err := einopdf.NewPDFParser(ctx, &einopdf.Config{ToPages: true})
	if err != nil {
		logger.Warn("eino pdf parser unavailable, using glyph reader only", zap.Error(err))
	} else {
		strategies = append(strategies, pdfStrategy{name: "eino", extract: pagesWithEino(parser)})
	}

	return append(strategies, pdfStrategy{name: "glyphs", extract: pagesFromGlyphs})
}

// extractPDF runs the strategies in order and stops at the first one that yields text.
func (e *Extractor) extractPDF(ctx context.Context, path string) string {
	for _, s := range e.pdfStrategies {
		text, err := s.extract(ctx, path)
		if err != nil {
			e.logger.Warn("pdf extraction failed",
				zap.String("strategy", s.name),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			return text
		}

		e.logger.Debug("pdf extraction returned no text", zap.String("strategy", s.name), zap.String("path", path))
	}

	return ""
}

func pagesWithEino(parser *einopdf.PDFParser) func(ctx context.Context, path string) (string, error) {
	return func(ctx context.Context, path string) (string, error) {
		file, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer file.Close()

		docs, err := parser.Parse(ctx, file, einoParser.WithURI(path))
		if err != nil {
			return "", fmt.Errorf("eino pdf parser: %w", err)
		}

		var builder strings.Builder
		for _, doc := range docs {
			if doc == nil || doc.Content == "" {
				continue
			}
			builder.WriteString(doc.Content)
			builder.WriteString("\n")
		}

		return builder.String(), nil
	}
}

// pagesFromGlyphs rebuilds page text from positioned glyph runs, starting a new line
// whenever the baseline changes.
func pagesFromGlyphs(_ context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		var lastY float64
		for j, glyph := range page.Content().Text {
			if j > 0 && glyph.Y != lastY {
				builder.WriteString("\n")
			}
			builder.WriteString(glyph.S)
			lastY = glyph.Y
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
