package matching

import (
	"fmt"
	"strings"

	"github.com/spigell/offer-matcher/internal/ai"
)

// GenerateReport renders the assessment. Only markdown is implemented; other formats return a
// notice as the report content instead of failing.
func GenerateReport(assessment *ai.Assessment, format ai.ReportFormat) *ai.Report {
	if assessment == nil {
		assessment = ai.NewAssessment("")
	}
	if format == "" {
		format = ai.FormatMarkdown
	}

	var content string
	switch format {
	case ai.FormatMarkdown:
		content = markdownReport(assessment)
	case ai.FormatPDF:
		content = "PDF格式暂未实现"
	case ai.FormatHTML:
		content = "HTML格式暂未实现"
	default:
		content = fmt.Sprintf("不支持的格式: %s", format)
	}

	return &ai.Report{Format: format, Content: content}
}

func markdownReport(a *ai.Assessment) string {
	var b strings.Builder

	b.WriteString("# Offer匹配分析报告\n\n")
	fmt.Fprintf(&b, "## 📊 综合匹配度：%d/100\n\n", a.OverallScore)
	b.WriteString("---\n\n")

	b.WriteString("## ✅ 优势项\n\n")
	writeBullets(&b, a.Strengths)

	b.WriteString("\n## ⚠️ 风险项\n\n")
	writeBullets(&b, a.Weaknesses)

	b.WriteString("\n## 💡 建议\n\n")
	writeBullets(&b, a.Recommendations)

	b.WriteString("\n---\n\n")
	b.WriteString(a.RawAnalysis)

	return b.String()
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
