package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"resume-optimizer-go/internal/constants"
)

// 技能类关键词模式，按语言、框架、云平台、数据、方法论等分组
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Python|Java|JavaScript|C\+\+|C#|Ruby|PHP|Go|Rust|Swift|Kotlin)\b`),
	regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel)\b`),
	regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Docker|Kubernetes|Jenkins|Git|GitHub|GitLab)\b`),
	regexp.MustCompile(`(?i)\b(?:SQL|MySQL|PostgreSQL|MongoDB|Redis|Elasticsearch)\b`),
	regexp.MustCompile(`(?i)\b(?:Machine Learning|AI|Data Science|Analytics|Big Data)\b`),
	regexp.MustCompile(`(?i)\b(?:Agile|Scrum|DevOps|CI/CD|TDD|Microservices)\b`),
	regexp.MustCompile(`(?i)\b(?:HTML|CSS|SASS|LESS|Bootstrap|Tailwind)\b`),
	regexp.MustCompile(`(?i)\b(?:REST|API|GraphQL|JSON|XML|SOAP)\b`),
}

// 经验年限要求模式，捕获组为年限数字
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s+\w+\s+experience`),
	regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?\s+(?:in|with|of)`),
	regexp.MustCompile(`(?i)minimum\s+(\d+)\s+years?`),
	regexp.MustCompile(`(?i)at least\s+(\d+)\s+years?`),
}

// 学历要求模式，每个模式仅取第一处匹配
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bachelor'?s?\s+degree`),
	regexp.MustCompile(`(?i)master'?s?\s+degree`),
	regexp.MustCompile(`(?i)phd|doctorate`),
	regexp.MustCompile(`(?i)computer science|engineering|mathematics`),
}

// 技术领域词表，命中即收录
var techVocabulary = []string{
	"cloud", "database", "frontend", "backend", "fullstack",
	"mobile", "web development", "software development",
	"data analysis", "testing", "deployment", "automation",
	"security", "performance", "scalability", "architecture",
}

// 保底关键词列表，主流程出错或模式全部落空时在岗位描述中直接查找
var commonKeywords = []string{
	"Python", "JavaScript", "React", "Node.js", "AWS", "Docker",
	"SQL", "Git", "Agile", "API", "Machine Learning", "Data Science",
	"Cloud", "DevOps", "Testing", "Frontend", "Backend",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// JobKeywordExtractor 基于规则的岗位描述关键词提取器
// 提取顺序固定：技能、要求、技术领域，同类内按首次出现排序
type JobKeywordExtractor struct{}

// NewJobKeywordExtractor 创建岗位关键词提取器
func NewJobKeywordExtractor() *JobKeywordExtractor {
	return &JobKeywordExtractor{}
}

// ExtractKeywords 从岗位描述提取关键词，上限15个
func (e *JobKeywordExtractor) ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := cleanText(jobDescription)

	skills := extractSkills(cleaned)
	requirements := extractRequirements(cleaned)
	technologies := extractTechnologies(cleaned)

	combined := make([]string, 0, len(skills)+len(requirements)+len(technologies))
	combined = append(combined, skills...)
	combined = append(combined, requirements...)
	combined = append(combined, technologies...)
	combined = dedupe(combined)

	// 三类模式全部落空时退回通用关键词探测
	if len(combined) == 0 {
		combined = e.FallbackKeywords(jobDescription)
	}

	if len(combined) > constants.MaxJobKeywords {
		combined = combined[:constants.MaxJobKeywords]
	}
	return combined, nil
}

// FallbackKeywords 保底关键词提取，上限10个
func (e *JobKeywordExtractor) FallbackKeywords(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)
	var found []string
	for _, keyword := range commonKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}
	if len(found) > constants.MaxFallbackKeywords {
		found = found[:constants.MaxFallbackKeywords]
	}
	return found
}

// cleanText 折叠空白并去除首尾空格
func cleanText(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// extractSkills 提取技术技能，保留匹配组顺序
func extractSkills(text string) []string {
	var skills []string
	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			skills = append(skills, titleCase(match))
		}
	}
	return dedupe(skills)
}

// extractRequirements 提取经验年限和学历要求
func extractRequirements(text string) []string {
	var requirements []string

	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			requirements = append(requirements, titleCase(fmt.Sprintf("%s+ years experience", match[1])))
		}
	}

	for _, pattern := range degreePatterns {
		if match := pattern.FindString(text); match != "" {
			requirements = append(requirements, titleCase(match))
		}
	}

	return dedupe(requirements)
}

// extractTechnologies 提取技术领域词
func extractTechnologies(text string) []string {
	lower := strings.ToLower(text)
	var technologies []string
	for _, keyword := range techVocabulary {
		if strings.Contains(lower, keyword) {
			technologies = append(technologies, titleCase(keyword))
		}
	}
	return technologies
}

// titleCase 单词首字母大写
// 非字母字符后的字母视为词首，因此 "node.js" -> "Node.Js"、"bachelor's degree" -> "Bachelor'S Degree"
func titleCase(s string) string {
	runes := []rune(s)
	prevIsLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if prevIsLetter {
				runes[i] = unicode.ToLower(r)
			} else {
				runes[i] = unicode.ToUpper(r)
			}
			prevIsLetter = true
		} else {
			prevIsLetter = false
		}
	}
	return string(runes)
}
