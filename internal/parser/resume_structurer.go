package parser

import (
	"context"
	"log"
	"regexp"
	"strings"

	"resume-optimizer-go/internal/types"
)

// ResumeStructurer 将提取出的文本行组织为结构化简历数据
// 以行级章节分类为主，关键词启发式识别各章节条目
type ResumeStructurer struct {
	classifier *SectionClassifier
	logger     *log.Logger

	emailRe *regexp.Regexp
	phoneRe *regexp.Regexp
	yearRe  *regexp.Regexp
}

// StructurerOption 结构化器的配置选项
type StructurerOption func(*ResumeStructurer)

// WithStructurerLogger 配置自定义日志记录器
func WithStructurerLogger(logger *log.Logger) StructurerOption {
	return func(s *ResumeStructurer) {
		s.logger = logger
	}
}

// NewResumeStructurer 创建简历结构化器
func NewResumeStructurer(options ...StructurerOption) *ResumeStructurer {
	s := &ResumeStructurer{
		classifier: NewSectionClassifier(),
		emailRe:    regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		phoneRe:    regexp.MustCompile(`[\+]?[1-9]?[0-9]{7,14}`),
		yearRe:     regexp.MustCompile(`\d{4}`),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// 经历条目的指示词
var (
	companyIndicators  = []string{"company", "corporation", "inc", "ltd", "llc"}
	jobTitleIndicators = []string{"engineer", "developer", "manager", "analyst", "specialist"}
	projectIndicators  = []string{"project", "developed", "built", "created", "implemented"}
	eduIndicators      = []string{"university", "college", "degree", "bachelor", "master", "phd"}
	skillIndicators    = []string{"proficient in", "experienced with", "skilled in", "expertise in"}
)

// 兜底解析从技能指示短语起截取的字符窗口长度
const fallbackSkillWindow = 200

// Structure 将文本行组织为结构化简历
// 行序决定章节归属：章节标题行切换当前章节，后续行按当前章节解析
func (s *ResumeStructurer) Structure(ctx context.Context, lines []string) (*types.StructuredResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resume := &types.StructuredResume{
		Skills:     []string{},
		Experience: []string{},
		Projects:   []string{},
		Education:  []string{},
	}

	currentSection := types.SectionUnknown

	for _, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		// 章节标题行只切换状态，不产生内容
		if section := s.classifier.Classify(text); section != types.SectionUnknown {
			currentSection = section
			continue
		}

		switch currentSection {
		case types.SectionSummary:
			resume.Summary = s.parseSummary(text, resume.Summary)
		case types.SectionSkills:
			resume.Skills = append(resume.Skills, s.parseSkills(text)...)
		case types.SectionExperience:
			resume.Experience = append(resume.Experience, s.parseExperience(text)...)
		case types.SectionProjects:
			resume.Projects = append(resume.Projects, s.parseProjects(text)...)
		case types.SectionEducation:
			resume.Education = append(resume.Education, s.parseEducation(text)...)
		case types.SectionContact:
			s.parseContact(text, &resume.Contact)
		}
	}

	// 保留原始文本用于兜底处理
	resume.RawText = strings.Join(lines, "\n")

	// 章节识别完全失败时走兜底解析
	if resume.Summary == "" && len(resume.Skills) == 0 {
		s.fallbackParsing(lines, resume)
	}

	s.cleanResumeData(resume)

	if s.logger != nil {
		s.logger.Printf("结构化完成: %d 技能, %d 经历, %d 项目, %d 教育",
			len(resume.Skills), len(resume.Experience), len(resume.Projects), len(resume.Education))
	}
	return resume, nil
}

// parseSummary 总结段落逐行拼接
func (s *ResumeStructurer) parseSummary(text, existing string) string {
	if s.classifier.IsHeader(text) {
		return existing
	}
	if existing != "" {
		return existing + " " + text
	}
	return text
}

// parseSkills 按常见分隔符切分技能
func (s *ResumeStructurer) parseSkills(text string) []string {
	delimiters := []string{",", "|", "•", "·", ";", "\n"}

	parts := []string{text}
	for _, delimiter := range delimiters {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, delimiter)...)
		}
		parts = next
	}

	var skills []string
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		// 过滤单字符碎片和混入的章节标题
		if len([]rune(skill)) > 1 && !s.classifier.IsHeader(skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// parseExperience 识别工作经历条目：公司名、年份或职位关键词
func (s *ResumeStructurer) parseExperience(text string) []string {
	lower := strings.ToLower(text)
	if containsAny(lower, companyIndicators) {
		return []string{text}
	}
	if s.yearRe.MatchString(text) {
		return []string{text}
	}
	if containsAny(lower, jobTitleIndicators) {
		return []string{text}
	}
	return nil
}

// parseProjects 识别项目条目：项目动词或列表符号前缀
func (s *ResumeStructurer) parseProjects(text string) []string {
	lower := strings.ToLower(text)
	if containsAny(lower, projectIndicators) {
		return []string{text}
	}
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "•") {
		return []string{strings.TrimSpace(strings.TrimLeft(text, "-•"))}
	}
	return nil
}

// parseEducation 识别教育条目
func (s *ResumeStructurer) parseEducation(text string) []string {
	if containsAny(strings.ToLower(text), eduIndicators) {
		return []string{text}
	}
	return nil
}

// parseContact 提取邮箱和电话，后出现的匹配覆盖先前的值
func (s *ResumeStructurer) parseContact(text string, contact *types.ContactInfo) {
	if match := s.emailRe.FindString(text); match != "" {
		contact.Email = match
	}
	if match := s.phoneRe.FindString(text); match != "" {
		contact.Phone = match
	}
}

// fallbackParsing 章节无法识别时的兜底解析
// 从技能指示短语后截取窗口提取技能，用前几句话充当总结
func (s *ResumeStructurer) fallbackParsing(lines []string, resume *types.StructuredResume) {
	combined := strings.Join(lines, " ")
	lower := strings.ToLower(combined)

	for _, indicator := range skillIndicators {
		start := strings.Index(lower, indicator)
		if start == -1 {
			continue
		}
		// 窗口按字符截取，避免切断多字节字符
		window := []rune(combined[start:])
		if len(window) > fallbackSkillWindow {
			window = window[:fallbackSkillWindow]
		}
		resume.Skills = append(resume.Skills, s.parseSkills(string(window))...)
	}

	if resume.Summary == "" {
		sentences := strings.Split(combined, ".")
		if len(sentences) > 3 {
			sentences = sentences[:3]
		}
		resume.Summary = strings.TrimSpace(strings.Join(sentences, ". "))
	}
}

// cleanResumeData 去重并过滤无效条目
// 去重保持首次出现顺序，大小写敏感
func (s *ResumeStructurer) cleanResumeData(resume *types.StructuredResume) {
	resume.Skills = dedupe(resume.Skills)
	resume.Experience = dedupe(resume.Experience)
	resume.Projects = dedupe(resume.Projects)
	resume.Education = dedupe(resume.Education)

	// 过滤过短的技能条目
	kept := resume.Skills[:0]
	for _, skill := range resume.Skills {
		if len([]rune(skill)) > 2 {
			kept = append(kept, skill)
		}
	}
	resume.Skills = kept
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
