package types

import "strings"

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionSummary 个人总结章节
	SectionSummary SectionType = "SUMMARY"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "PROJECTS"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionContact 联系方式章节
	SectionContact SectionType = "CONTACT"
	// SectionUnknown 未分类内容
	SectionUnknown SectionType = ""
)

// ContactInfo 联系方式
// Name和Location为可选字段，规则提取不一定能填充
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// IsEmpty 判断是否未提取到任何联系方式
func (c ContactInfo) IsEmpty() bool {
	return c.Email == "" && c.Phone == ""
}

// StructuredResume 表示整个简历的结构化数据
type StructuredResume struct {
	// 个人总结
	Summary string `json:"summary"`

	// 技能列表
	Skills []string `json:"skills"`

	// 工作经历条目
	Experience []string `json:"experience"`

	// 项目经历条目
	Projects []string `json:"projects"`

	// 教育经历条目
	Education []string `json:"education"`

	// 联系方式
	Contact ContactInfo `json:"contact_info"`

	// 原始文本（按行拼接）
	RawText string `json:"raw_text"`

	// 针对岗位增强后记录的岗位关键词
	JobRequirements []string `json:"job_requirements,omitempty"`
}

// Clone 返回简历数据的深拷贝，增强操作不修改原始数据
func (r *StructuredResume) Clone() *StructuredResume {
	if r == nil {
		return nil
	}
	dup := *r
	dup.Skills = append([]string(nil), r.Skills...)
	dup.Experience = append([]string(nil), r.Experience...)
	dup.Projects = append([]string(nil), r.Projects...)
	dup.Education = append([]string(nil), r.Education...)
	dup.JobRequirements = append([]string(nil), r.JobRequirements...)
	return &dup
}

// FullText 将摘要、技能、经历和项目文本拼接为一段，用于关键词匹配和相关性计算
func (r *StructuredResume) FullText() string {
	parts := make([]string, 0, 1+len(r.Skills)+len(r.Experience)+len(r.Projects))
	if r.Summary != "" {
		parts = append(parts, r.Summary)
	}
	parts = append(parts, r.Skills...)
	parts = append(parts, r.Experience...)
	parts = append(parts, r.Projects...)
	return strings.Join(parts, " ")
}

// DefaultResume 返回解析完全失败时的保底简历数据
func DefaultResume() *StructuredResume {
	return &StructuredResume{
		Summary:    "Professional with diverse experience",
		Skills:     []string{"Communication", "Teamwork", "Problem Solving"},
		Experience: []string{},
		Projects:   []string{},
		Education:  []string{},
	}
}

// ScoreReport 简历评分结果
type ScoreReport struct {
	// 综合分数 (0-100量纲)
	OverallScore float64 `json:"overall_score"`

	// 关键词匹配分数
	KeywordScore float64 `json:"keyword_score"`

	// 结构完整性分数
	FormatScore float64 `json:"format_score"`

	// 内容质量分数
	ContentScore float64 `json:"content_score"`

	// 岗位相关性分数
	RelevanceScore float64 `json:"relevance_score"`

	// ATS兼容性分数
	ATSScore float64 `json:"ats_score"`

	// 改进建议
	Recommendations []string `json:"recommendations"`

	// 简历亮点
	Strengths []string `json:"strengths,omitempty"`

	// 具体改进项
	Improvements []string `json:"improvements,omitempty"`

	// 评分失败时的错误说明
	Error string `json:"error,omitempty"`

	// 评估ID
	EvaluationID string `json:"evaluation_id,omitempty"`

	// 评估时间
	EvaluatedAt int64 `json:"evaluated_at,omitempty"`
}
