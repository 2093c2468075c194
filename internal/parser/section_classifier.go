package parser

import (
	"strings"

	"resume-optimizer-go/internal/types"
)

// sectionRule 章节识别规则，关键词命中即归入对应章节
type sectionRule struct {
	section  types.SectionType
	keywords []string
}

// SectionClassifier 行级章节分类器
// 规则按序匹配，先出现的章节类型优先
type SectionClassifier struct {
	rules []sectionRule
}

// NewSectionClassifier 创建章节分类器，使用默认的英文章节关键词表
func NewSectionClassifier() *SectionClassifier {
	return &SectionClassifier{
		rules: []sectionRule{
			{types.SectionSummary, []string{"summary", "profile", "objective", "about"}},
			{types.SectionSkills, []string{"skills", "technical skills", "competencies"}},
			{types.SectionExperience, []string{"experience", "work experience", "employment", "professional experience"}},
			{types.SectionProjects, []string{"projects", "project experience", "notable projects"}},
			{types.SectionEducation, []string{"education", "academic", "qualification"}},
			{types.SectionContact, []string{"contact", "personal information", "details"}},
		},
	}
}

// Classify 判断一行文本是否为章节标题
// 命中返回章节类型，否则返回 SectionUnknown
func (c *SectionClassifier) Classify(line string) types.SectionType {
	lower := strings.ToLower(line)
	for _, rule := range c.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.section
			}
		}
	}
	return types.SectionUnknown
}

// IsHeader 判断一行是否命中任意章节关键词
func (c *SectionClassifier) IsHeader(line string) bool {
	return c.Classify(line) != types.SectionUnknown
}
