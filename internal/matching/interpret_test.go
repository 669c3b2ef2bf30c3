package matching

import (
	"reflect"
	"testing"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
)

func TestInterpretMatchScoreAndStrengths(t *testing.T) {
	t.Parallel()

	raw := "总分：82\n优势：沟通能力强\n编程扎实"
	assessment := InterpretMatch(raw)

	if assessment.OverallScore != 82 {
		t.Fatalf("expected score 82, got %d", assessment.OverallScore)
	}
	if want := []string{"沟通能力强", "编程扎实"}; !reflect.DeepEqual(assessment.Strengths, want) {
		t.Fatalf("expected strengths %v, got %v", want, assessment.Strengths)
	}
	if assessment.RawAnalysis != raw {
		t.Fatalf("raw analysis not retained")
	}
}

func TestInterpretMatchFullReply(t *testing.T) {
	t.Parallel()

	raw := `总分: 75
详细评分：
技能匹配：90分
经验匹配度：60
- 薪资匹配：120分
优势：
熟悉Go
- 列表项被忽略
劣势：
缺少管理经验
建议：
争取更高薪资
了解团队规模
决策：谨慎考虑，薪资偏低`

	got := InterpretMatch(raw)

	want := &ai.Assessment{
		OverallScore:    75,
		DetailedScores:  map[string]int{"技能匹配": 90, "经验匹配度": 60, "薪资匹配": 100},
		Strengths:       []string{"熟悉Go"},
		Weaknesses:      []string{"缺少管理经验"},
		Recommendations: []string{"争取更高薪资", "了解团队规模"},
		Decision:        "谨慎考虑，薪资偏低",
		RawAnalysis:     raw,
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestInterpretMatchDegradesToDefaults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		raw   string
		score int
	}{
		{name: "empty", raw: "", score: 0},
		{name: "no labels", raw: "这个岗位不错", score: 0},
		{name: "score above range", raw: "总分：250", score: 100},
		{name: "score overflow", raw: "总分：99999999999999999999999", score: 100},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := InterpretMatch(tc.raw)
			if got.OverallScore != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, got.OverallScore)
			}
			if got.Strengths == nil || got.Weaknesses == nil || got.Recommendations == nil || got.DetailedScores == nil {
				t.Fatalf("expected initialized collections, got %+v", got)
			}
			if got.RawAnalysis != tc.raw {
				t.Fatalf("raw analysis not retained")
			}
		})
	}
}

func TestInterpretRecommendations(t *testing.T) {
	t.Parallel()

	positions := []company.Position{
		{Title: "后端工程师"},
		{Title: "Python后端工程师"},
		{Title: "数据分析师"},
		{Title: "前端工程师"},
	}

	cases := []struct {
		name string
		raw  string
		topK int
		want []ai.PositionRecommendation
	}{
		{
			name: "ranked lines",
			raw: "推荐如下：\n1. Python后端工程师 - 匹配度：92 - 理由：技能高度吻合\n" +
				"2、数据分析师 匹配度: 70\n3) 不存在的岗位 - 匹配度：99\n",
			topK: 3,
			want: []ai.PositionRecommendation{
				{Title: "Python后端工程师", MatchScore: 92, Reason: "技能高度吻合"},
				{Title: "数据分析师", MatchScore: 70, Reason: fallbackReason},
			},
		},
		{
			name: "title named in reason is ignored",
			raw:  "1. 后端工程师 - 匹配度：85 - 理由：比Python后端工程师更贴合候选人经历\n",
			topK: 3,
			want: []ai.PositionRecommendation{
				{Title: "后端工程师", MatchScore: 85, Reason: "比Python后端工程师更贴合候选人经历"},
			},
		},
		{
			name: "stops at top k",
			raw:  "1. 前端工程师\n2. 后端工程师\n3. 数据分析师",
			topK: 2,
			want: []ai.PositionRecommendation{
				{Title: "前端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
				{Title: "后端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
			},
		},
		{
			name: "repeated title counted once",
			raw:  "1. 数据分析师\n2. 数据分析师",
			topK: 3,
			want: []ai.PositionRecommendation{
				{Title: "数据分析师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
			},
		},
		{
			name: "fallback to first positions",
			raw:  "都不太合适",
			topK: 2,
			want: []ai.PositionRecommendation{
				{Title: "后端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
				{Title: "Python后端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
			},
		},
		{
			name: "default top k",
			raw:  "",
			topK: 0,
			want: []ai.PositionRecommendation{
				{Title: "后端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
				{Title: "Python后端工程师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
				{Title: "数据分析师", MatchScore: fallbackMatchScore, Reason: fallbackReason},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := InterpretRecommendations(tc.raw, positions, tc.topK)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
