package matching

import (
	"strings"
	"testing"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/resume"
)

func TestRenderMatchPromptIsDeterministic(t *testing.T) {
	t.Parallel()

	in := MatchInput{
		Resume: &resume.Record{
			Skills:         []string{"Go", "Docker"},
			WorkExperience: []resume.Experience{{Company: "某公司", Position: "后端工程师", Duration: "2020-2023"}},
			Education:      []resume.Education{{Degree: "本科", School: "北京大学", Major: "计算机"}},
		},
		JobDescription: "负责分布式存储开发",
		Company:        &company.Profile{Name: "示例公司", BasicInfo: company.BasicInfo{Description: "云服务商"}},
		Preferences:    ai.Preferences{ExpectedSalary: "30K", Location: "上海", OvertimeAcceptable: true},
	}

	first := RenderMatchPrompt(in)
	second := RenderMatchPrompt(in)
	if first != second {
		t.Fatalf("expected identical prompts")
	}

	for _, want := range []string{
		"- 技能：Go, Docker",
		"某公司 - 后端工程师 (2020-2023)",
		"北京大学 - 本科 - 计算机",
		"负责分布式存储开发",
		"- 公司名称：示例公司",
		"- 公司简介：云服务商",
		"- 期望薪资：30K",
		"- 期望地点：上海",
		"- 加班：接受",
	} {
		if !strings.Contains(first, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, first)
		}
	}

	if strings.Contains(first, "{{") {
		t.Fatalf("unrendered placeholder in prompt:\n%s", first)
	}
}

func TestRenderMatchPromptPlaceholders(t *testing.T) {
	t.Parallel()

	prompt := RenderMatchPrompt(MatchInput{JobDescription: "岗位 {{COMPANY_NAME}}"})

	for _, want := range []string{noExperience, noEducation, "- 公司名称：" + unknownCompany, "- 加班：不接受"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, prompt)
		}
	}

	if !strings.Contains(prompt, "岗位 {{COMPANY_NAME}}") {
		t.Fatalf("expected caller text to be inserted verbatim")
	}
}

func TestRenderRecommendPromptListsPositions(t *testing.T) {
	t.Parallel()

	positions := []company.Position{
		{Title: "Go工程师", Salary: "30-50K", Requirements: []string{"a", "b", "c", "d"}},
		{Title: "测试工程师", Salary: "15-25K"},
	}

	prompt := RenderRecommendPrompt(&resume.Record{Skills: []string{"Go"}}, positions, 2)

	want := "1. Go工程师\n   薪资: 30-50K\n   要求: a, b, c\n\n2. 测试工程师\n   薪资: 15-25K\n   要求: "
	if !strings.Contains(prompt, want) {
		t.Fatalf("expected position listing %q, got:\n%s", want, prompt)
	}
	if !strings.Contains(prompt, "最适合候选人的 2 个岗位") {
		t.Fatalf("expected top k in prompt, got:\n%s", prompt)
	}
	if prompt != RenderRecommendPrompt(&resume.Record{Skills: []string{"Go"}}, positions, 2) {
		t.Fatalf("expected identical prompts")
	}
}
