package resume

import (
	"regexp"
	"strconv"
	"strings"
)

// Each extractor is total: a field that cannot be found comes back empty.

var (
	nameRe  = regexp.MustCompile(`姓\s*名[:：]\s*([^\n]+)`)
	phoneRe = regexp.MustCompile(`1[3-9]\d{9}`)
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	ageRe   = regexp.MustCompile(`年\s*龄[:：]\s*(\d+)`)

	degreeThenSchoolRe = regexp.MustCompile(`(本科|硕士|博士|大专).*?([^\n]+大学[^\n]*)`)
	schoolThenDegreeRe = regexp.MustCompile(`([^\n]+大学[^\n]*).*?(本科|硕士|博士|大专)`)

	workSectionRe    = regexp.MustCompile(`(?s)(?:工作经[历验])(.+?)(?:教育|项目|技能|$)`)
	projectSectionRe = regexp.MustCompile(`(?s)(?:项目经[历验])(.+?)(?:工作|教育|技能|$)`)

	summaryLabelRe     = regexp.MustCompile(`(?:个人简介|自我评价|个人总结)[:：]\s*`)
	certificateLabelRe = regexp.MustCompile(`(?:资格证书|证书)[:：]\s*`)
	labeledLineRe      = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}]+[:：]`)
	listSeparatorRe    = regexp.MustCompile(`[、，,;；\n]+`)
)

var degrees = map[string]bool{"本科": true, "硕士": true, "博士": true, "大专": true}

// SkillVocabulary is the fixed list of recognised technology tokens.
// Extracted skills are reported in this order.
var SkillVocabulary = []string{
	"Python", "Java", "JavaScript", "C++", "Go", "Rust",
	"Django", "Flask", "Spring", "React", "Vue", "Angular",
	"MySQL", "PostgreSQL", "MongoDB", "Redis",
	"Docker", "Kubernetes", "AWS", "Azure",
	"Git", "Linux", "Nginx", "Kafka",
}

var skillPatterns = compileSkillPatterns(SkillVocabulary)

// compileSkillPatterns builds case-insensitive matchers bounded by ASCII word boundaries,
// so CJK text directly adjacent to a token still counts.
func compileSkillPatterns(vocabulary []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(vocabulary))
	for i, skill := range vocabulary {
		patterns[i] = regexp.MustCompile(`(?i)(?:^|[^0-9A-Za-z_])` + regexp.QuoteMeta(skill) + `(?:$|[^0-9A-Za-z_])`)
	}
	return patterns
}

func ExtractPersonalInfo(text string) PersonalInfo {
	return PersonalInfo{
		Name:  ExtractName(text),
		Phone: ExtractPhone(text),
		Email: ExtractEmail(text),
		Age:   ExtractAge(text),
	}
}

func ExtractName(text string) string {
	if m := nameRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractPhone returns the first 11-digit mainland mobile number.
func ExtractPhone(text string) string {
	return phoneRe.FindString(text)
}

func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractAge returns 0 when no age label is present.
func ExtractAge(text string) int {
	m := ageRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	age, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return age
}

// ExtractEducation matches degree-before-school and school-before-degree layouts.
// Both passes run; records describing the same (degree, school) pair are kept once.
func ExtractEducation(text string) []Education {
	education := make([]Education, 0)
	seen := make(map[[2]string]bool)

	add := func(degree, school string) {
		degree, school = strings.TrimSpace(degree), strings.TrimSpace(school)
		key := [2]string{degree, school}
		if seen[key] {
			return
		}
		seen[key] = true
		education = append(education, Education{Degree: degree, School: school})
	}

	for _, m := range degreeThenSchoolRe.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}

	for _, m := range schoolThenDegreeRe.FindAllStringSubmatch(text, -1) {
		if degrees[m[1]] {
			add(m[1], m[2])
			continue
		}
		add(m[2], m[1])
	}

	return education
}

// WorkSection returns the text between a work-experience heading and the next known heading.
func WorkSection(text string) string {
	if m := workSectionRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ProjectSection returns the text between a project-experience heading and the next known heading.
func ProjectSection(text string) string {
	if m := projectSectionRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractWorkExperience does not parse items yet and always returns an empty list.
// WorkSection reports whether the section exists.
func ExtractWorkExperience(string) []Experience {
	return []Experience{}
}

// ExtractProjectExperience does not parse items yet and always returns an empty list.
func ExtractProjectExperience(string) []Experience {
	return []Experience{}
}

func ExtractSkills(text string) []string {
	skills := make([]string, 0)
	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			skills = append(skills, SkillVocabulary[i])
		}
	}
	return skills
}

// ExtractSummary returns the text after a self-description label, continuing over following
// lines until a blank line or the next "标签：" line.
func ExtractSummary(text string) string {
	return labeledBlock(summaryLabelRe, text)
}

// ExtractCertificates splits the block after a certificate label on list separators.
func ExtractCertificates(text string) []string {
	certificates := make([]string, 0)
	block := labeledBlock(certificateLabelRe, text)
	if block == "" {
		return certificates
	}

	for _, item := range listSeparatorRe.Split(block, -1) {
		if item = strings.TrimSpace(item); item != "" {
			certificates = append(certificates, item)
		}
	}
	return certificates
}

func labeledBlock(label *regexp.Regexp, text string) string {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return ""
	}

	lines := strings.Split(text[loc[1]:], "\n")
	if strings.TrimSpace(lines[0]) == "" {
		return ""
	}

	block := []string{lines[0]}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" || labeledLineRe.MatchString(line) {
			break
		}
		block = append(block, line)
	}

	return strings.TrimSpace(strings.Join(block, "\n"))
}
