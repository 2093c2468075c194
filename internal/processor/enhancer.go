package processor

import (
	"context"
	"strings"
	"unicode"

	"resume-optimizer-go/internal/constants"
	"resume-optimizer-go/internal/types"
)

// KeywordResumeEnhancer 依据岗位关键词增强简历内容
// 所有增强都在副本上进行，原始简历数据不被修改
type KeywordResumeEnhancer struct{}

// NewKeywordResumeEnhancer 创建简历增强器
func NewKeywordResumeEnhancer() *KeywordResumeEnhancer {
	return &KeywordResumeEnhancer{}
}

// Enhance 对简历的总结、技能、经历和项目做关键词增强
func (e *KeywordResumeEnhancer) Enhance(ctx context.Context, resume *types.StructuredResume, keywords []string) (*types.StructuredResume, error) {
	if resume == nil {
		return nil, NewParsingError("enhance", "简历数据为空")
	}
	if err := ctx.Err(); err != nil {
		// 上下文取消时原样返回，增强属于尽力而为的操作
		return resume, nil
	}

	enhanced := resume.Clone()

	enhanced.Summary = enhanceSummary(resume.Summary, keywords)
	enhanced.Skills = enhanceSkills(resume.Skills, keywords)
	enhanced.Experience = enhanceExperience(resume.Experience, keywords)
	enhanced.Projects = enhanceProjects(resume.Projects, keywords)

	// 记录本次增强使用的岗位关键词
	enhanced.JobRequirements = append([]string(nil), keywords...)

	return enhanced, nil
}

// enhanceSummary 在总结末尾补充岗位技能关键词
func enhanceSummary(original string, keywords []string) string {
	if original == "" {
		original = "Experienced professional with strong technical skills"
	}

	// 带数字的关键词（经验年限类）不进总结
	keySkills := digitFreeKeywords(keywords)
	if len(keySkills) > 5 {
		keySkills = keySkills[:5]
	}

	if len(keySkills) == 0 {
		return original
	}

	head := keySkills
	if len(head) > 3 {
		head = head[:3]
	}
	enhanced := strings.TrimRight(original, ".") + ". Experienced in " + strings.Join(head, ", ")
	if len(keySkills) > 3 {
		enhanced += " and " + keySkills[3]
	}
	enhanced += "."
	return enhanced
}

// enhanceSkills 补充缺失的岗位技能，并把命中岗位要求的技能排到前面
func enhanceSkills(original []string, keywords []string) []string {
	enhanced := append([]string(nil), original...)

	for _, requirement := range keywords {
		// 经验年限类要求不算技能
		if containsDigit(requirement) {
			continue
		}

		present := false
		for _, skill := range enhanced {
			if strings.Contains(strings.ToLower(skill), strings.ToLower(requirement)) {
				present = true
				break
			}
		}
		if !present {
			enhanced = append(enhanced, requirement)
		}
	}

	// 稳定分区：命中岗位要求的技能在前，其余保持原顺序
	var matched, others []string
	for _, skill := range enhanced {
		if matchesAnyKeyword(skill, keywords) {
			matched = append(matched, skill)
		} else {
			others = append(others, skill)
		}
	}

	return append(matched, others...)
}

// enhanceExperience 为足够详实的经历条目补充一个未提及的关键词
func enhanceExperience(original []string, keywords []string) []string {
	techKeywords := digitFreeKeywords(keywords)

	enhanced := make([]string, 0, len(original))
	for _, exp := range original {
		entry := exp
		if len(techKeywords) > 0 && len([]rune(exp)) > constants.MinExperienceEnhanceLen {
			relevant := techKeywords
			if len(relevant) > 2 {
				relevant = relevant[:2]
			}
			for _, keyword := range relevant {
				if !strings.Contains(strings.ToLower(exp), strings.ToLower(keyword)) {
					entry += " Utilized " + keyword + " for improved performance."
					break
				}
			}
		}
		enhanced = append(enhanced, entry)
	}
	return enhanced
}

// enhanceProjects 为项目条目补充技术关键词，不足两个项目时合成一个
func enhanceProjects(original []string, keywords []string) []string {
	techKeywords := digitFreeKeywords(keywords)

	enhanced := make([]string, 0, len(original))
	for _, project := range original {
		entry := project
		if len(techKeywords) > 0 && len([]rune(project)) > constants.MinProjectEnhanceLen {
			tech := techKeywords[0]
			if !strings.Contains(strings.ToLower(project), strings.ToLower(tech)) {
				entry += " Implemented using " + tech + "."
			}
		}
		enhanced = append(enhanced, entry)
	}

	if len(enhanced) < 2 && len(techKeywords) > 0 {
		newProject := "Personal project demonstrating proficiency in " + techKeywords[0]
		if len(techKeywords) > 1 {
			newProject += " and " + techKeywords[1]
		}
		enhanced = append(enhanced, newProject)
	}

	return enhanced
}

// matchesAnyKeyword 技能与关键词双向子串匹配（大小写不敏感）
func matchesAnyKeyword(skill string, keywords []string) bool {
	skillLower := strings.ToLower(skill)
	for _, req := range keywords {
		reqLower := strings.ToLower(req)
		if strings.Contains(skillLower, reqLower) || strings.Contains(reqLower, skillLower) {
			return true
		}
	}
	return false
}

// digitFreeKeywords 过滤掉包含数字的关键词
func digitFreeKeywords(keywords []string) []string {
	var result []string
	for _, kw := range keywords {
		if !containsDigit(kw) {
			result = append(result, kw)
		}
	}
	return result
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
