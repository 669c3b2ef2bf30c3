package matching

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/resume"
)

//go:embed prompts/match.md
var matchTemplate string

//go:embed prompts/recommend.md
var recommendTemplate string

const (
	noExperience     = "无工作经验"
	noEducation      = "未提供教育背景"
	unknownCompany   = "未知公司"
	overtimeAccepted = "接受"
	overtimeRejected = "不接受"

	maxListedRequirements = 3
)

// MatchInput is everything a match-analysis prompt is rendered from.
type MatchInput struct {
	Resume         *resume.Record
	JobDescription string
	Company        *company.Profile
	Preferences    ai.Preferences
}

// RenderMatchPrompt renders the match-analysis prompt. Identical inputs produce identical output.
func RenderMatchPrompt(in MatchInput) string {
	record := in.Resume
	if record == nil {
		record = &resume.Record{}
	}

	companyName, companyDescription := unknownCompany, ""
	if in.Company != nil {
		if name := strings.TrimSpace(in.Company.Name); name != "" {
			companyName = name
		}
		companyDescription = in.Company.BasicInfo.Description
	}

	overtime := overtimeRejected
	if in.Preferences.OvertimeAcceptable {
		overtime = overtimeAccepted
	}

	return strings.NewReplacer(
		"{{RESUME_SKILLS}}", strings.Join(record.Skills, ", "),
		"{{RESUME_EXPERIENCE}}", formatExperience(record.WorkExperience),
		"{{RESUME_EDUCATION}}", formatEducation(record.Education),
		"{{JOB_DESCRIPTION}}", in.JobDescription,
		"{{COMPANY_NAME}}", companyName,
		"{{COMPANY_DESCRIPTION}}", companyDescription,
		"{{EXPECTED_SALARY}}", in.Preferences.ExpectedSalary,
		"{{LOCATION}}", in.Preferences.Location,
		"{{OVERTIME_ACCEPTABLE}}", overtime,
	).Replace(matchTemplate)
}

// RenderRecommendPrompt renders the position-recommendation prompt for the top k positions.
func RenderRecommendPrompt(record *resume.Record, positions []company.Position, topK int) string {
	if record == nil {
		record = &resume.Record{}
	}

	return strings.NewReplacer(
		"{{RESUME_SKILLS}}", strings.Join(record.Skills, ", "),
		"{{RESUME_EXPERIENCE}}", formatExperience(record.WorkExperience),
		"{{POSITIONS}}", formatPositions(positions),
		"{{TOP_K}}", strconv.Itoa(topK),
	).Replace(recommendTemplate)
}

func formatExperience(items []resume.Experience) string {
	if len(items) == 0 {
		return noExperience
	}

	lines := make([]string, len(items))
	for i, exp := range items {
		lines[i] = fmt.Sprintf("%s - %s (%s)", exp.Company, exp.Position, exp.Duration)
	}
	return strings.Join(lines, "\n")
}

func formatEducation(items []resume.Education) string {
	if len(items) == 0 {
		return noEducation
	}

	lines := make([]string, len(items))
	for i, edu := range items {
		lines[i] = fmt.Sprintf("%s - %s - %s", edu.School, edu.Degree, edu.Major)
	}
	return strings.Join(lines, "\n")
}

// formatPositions numbers the positions from 1 and lists at most three requirements for each.
func formatPositions(positions []company.Position) string {
	var b strings.Builder
	for i, pos := range positions {
		requirements := pos.Requirements
		if len(requirements) > maxListedRequirements {
			requirements = requirements[:maxListedRequirements]
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, pos.Title)
		fmt.Fprintf(&b, "   薪资: %s\n", pos.Salary)
		fmt.Fprintf(&b, "   要求: %s\n", strings.Join(requirements, ", "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
