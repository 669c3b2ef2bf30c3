package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/offer-matcher/internal/ai"
	"github.com/spigell/offer-matcher/internal/company"
	"github.com/spigell/offer-matcher/internal/utils"
)

const (
	DefaultTopK = 3

	fallbackMatchScore = 80
	fallbackReason     = "基于技能匹配"
)

var (
	overallScoreRe   = regexp.MustCompile(`总分[：:]\s*(\d+)`)
	detailedBlockRe  = regexp.MustCompile(`(?s)详细评分[：:](.*?)(?:优势|劣势|风险|建议|决策|$)`)
	detailedLineRe   = regexp.MustCompile(`^[-*•\s]*([^：:\d]+?)[：:]\s*(\d+)\s*分?`)
	strengthsRe      = regexp.MustCompile(`(?s)优势[：:](.+?)(?:劣势|风险|建议|$)`)
	weaknessesRe     = regexp.MustCompile(`(?s)(?:劣势|风险)[：:](.+?)(?:建议|决策|$)`)
	recommendationRe = regexp.MustCompile(`(?s)建议[：:](.+?)(?:决策|$)`)
	decisionRe       = regexp.MustCompile(`决策[：:][ \t]*([^\n]*)`)

	rankedLineRe = regexp.MustCompile(`^\s*\d+\s*[.、)）]\s*(.+)$`)
	lineScoreRe  = regexp.MustCompile(`匹配度[：:]\s*(\d+)`)
	lineReasonRe = regexp.MustCompile(`理由[：:]\s*(.+)$`)
)

// InterpretMatch recovers a structured assessment from the model reply.
// Sections that cannot be found keep their zero value and the raw reply is always retained.
func InterpretMatch(raw string) *ai.Assessment {
	assessment := ai.NewAssessment(raw)

	if m := overallScoreRe.FindStringSubmatch(raw); m != nil {
		assessment.OverallScore = parseScore(m[1])
	}

	if m := detailedBlockRe.FindStringSubmatch(raw); m != nil {
		for _, line := range utils.NonEmptyLines(m[1]) {
			if d := detailedLineRe.FindStringSubmatch(line); d != nil {
				assessment.DetailedScores[strings.TrimSpace(d[1])] = parseScore(d[2])
			}
		}
	}

	assessment.Strengths = blockLines(strengthsRe, raw)
	assessment.Weaknesses = blockLines(weaknessesRe, raw)
	assessment.Recommendations = blockLines(recommendationRe, raw)

	if m := decisionRe.FindStringSubmatch(raw); m != nil {
		assessment.Decision = strings.TrimSpace(m[1])
	}

	return assessment
}

// blockLines splits the first block captured by re into lines, dropping "-" bullet lines.
func blockLines(re *regexp.Regexp, raw string) []string {
	items := []string{}

	m := re.FindStringSubmatch(raw)
	if m == nil {
		return items
	}

	for _, line := range utils.NonEmptyLines(m[1]) {
		if strings.HasPrefix(line, "-") {
			continue
		}
		items = append(items, line)
	}
	return items
}

// InterpretRecommendations reads a numbered ranking of known position titles from the model reply.
// When no title can be recovered it falls back to the first topK positions with a default score and reason.
func InterpretRecommendations(raw string, positions []company.Position, topK int) []ai.PositionRecommendation {
	if topK <= 0 {
		topK = DefaultTopK
	}

	items := make([]ai.PositionRecommendation, 0, topK)
	used := make(map[string]bool)

	for _, line := range utils.NonEmptyLines(raw) {
		if len(items) == topK {
			break
		}

		m := rankedLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		title := matchTitle(titleSegment(m[1]), positions, used)
		if title == "" {
			continue
		}
		used[title] = true

		item := ai.PositionRecommendation{Title: title, MatchScore: fallbackMatchScore, Reason: fallbackReason}
		if s := lineScoreRe.FindStringSubmatch(m[1]); s != nil {
			item.MatchScore = parseScore(s[1])
		}
		if r := lineReasonRe.FindStringSubmatch(m[1]); r != nil {
			if reason := strings.TrimSpace(r[1]); reason != "" {
				item.Reason = reason
			}
		}

		items = append(items, item)
	}

	if len(items) > 0 {
		return items
	}

	return fallbackRecommendations(positions, topK)
}

func fallbackRecommendations(positions []company.Position, topK int) []ai.PositionRecommendation {
	if len(positions) > topK {
		positions = positions[:topK]
	}

	items := make([]ai.PositionRecommendation, 0, len(positions))
	for _, pos := range positions {
		items = append(items, ai.PositionRecommendation{
			Title:      pos.Title,
			MatchScore: fallbackMatchScore,
			Reason:     fallbackReason,
		})
	}
	return items
}

// titleSegment drops the score and reason parts so titles mentioned in a reason are not matched.
func titleSegment(line string) string {
	for _, label := range []string{"匹配度", "理由"} {
		if i := strings.Index(line, label); i >= 0 {
			line = line[:i]
		}
	}
	return line
}

// matchTitle returns the longest unused position title mentioned in line.
func matchTitle(line string, positions []company.Position, used map[string]bool) string {
	var best string
	for _, pos := range positions {
		title := strings.TrimSpace(pos.Title)
		if title == "" || used[title] || !strings.Contains(line, title) {
			continue
		}
		if len(title) > len(best) {
			best = title
		}
	}
	return best
}

// parseScore clamps the number to [0, 100]; digits too long to parse count as 100.
func parseScore(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 100
	}
	return min(max(n, 0), 100)
}
