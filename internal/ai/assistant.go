package ai

// Preferences are the candidate's own constraints for an offer.
type Preferences struct {
	ExpectedSalary     string `json:"expected_salary,omitempty"`
	Location           string `json:"location,omitempty"`
	OvertimeAcceptable bool   `json:"overtime_acceptable"`
}

// Assessment is the structured outcome of a match analysis.
// RawAnalysis always carries the model reply, even when nothing else could be recovered from it.
type Assessment struct {
	OverallScore    int            `json:"overall_score"`
	DetailedScores  map[string]int `json:"detailed_scores"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	Recommendations []string       `json:"recommendations"`
	Decision        string         `json:"decision"`
	RawAnalysis     string         `json:"raw_analysis"`
}

// NewAssessment returns an assessment with every collection initialized.
func NewAssessment(raw string) *Assessment {
	return &Assessment{
		DetailedScores:  map[string]int{},
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		RawAnalysis:     raw,
	}
}

type PositionRecommendation struct {
	Title      string `json:"title"`
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
}

// Recommendations is the result of a position recommendation request.
// Message is set when there was nothing to rank.
type Recommendations struct {
	Items       []PositionRecommendation `json:"recommendations"`
	Message     string                   `json:"message,omitempty"`
	RawResponse string                   `json:"raw_response,omitempty"`
}

type ReportFormat string

const (
	FormatMarkdown ReportFormat = "markdown"
	FormatPDF      ReportFormat = "pdf"
	FormatHTML     ReportFormat = "html"
)

// ReportFormats lists the formats a caller may request, in presentation order.
var ReportFormats = []ReportFormat{FormatMarkdown, FormatPDF, FormatHTML}

type Report struct {
	Format  ReportFormat `json:"format"`
	Content string       `json:"content"`
}
