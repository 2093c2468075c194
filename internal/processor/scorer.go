package processor

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-optimizer-go/internal/constants"
	"resume-optimizer-go/internal/types"
)

var (
	wordRe        = regexp.MustCompile(`\b\w+\b`)
	specialCharRe = regexp.MustCompile(`[^\w\s]`)
)

// HeuristicResumeScorer 多维度简历评分器
// 五个子分数加权合成综合分数：关键词25%、内容25%、相关性20%、结构15%、ATS兼容15%
type HeuristicResumeScorer struct{}

// NewHeuristicResumeScorer 创建简历评分器
func NewHeuristicResumeScorer() *HeuristicResumeScorer {
	return &HeuristicResumeScorer{}
}

// Score 计算简历与岗位的多维匹配分数
func (s *HeuristicResumeScorer) Score(ctx context.Context, resume *types.StructuredResume, jobDescription string, keywords []string) (*types.ScoreReport, error) {
	if resume == nil {
		// 无法评分时返回零分报告而不是错误，调用方仍能拿到建议
		return FaultReport("简历数据为空"), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resumeText := resume.FullText()

	keywordScore := s.keywordScore(resumeText, keywords)
	formatScore := s.formatScore(resume)
	contentScore := s.contentScore(resume)
	relevanceScore := s.relevanceScore(resumeText, jobDescription)
	atsScore := s.atsCompatibility(resume, resumeText)

	// 加权综合分数
	finalScore := keywordScore*constants.KeywordWeight +
		contentScore*constants.ContentWeight +
		relevanceScore*constants.RelevanceWeight +
		formatScore*constants.FormatWeight +
		atsScore*constants.ATSWeight

	report := &types.ScoreReport{
		OverallScore:    round1(finalScore),
		KeywordScore:    round1(keywordScore),
		FormatScore:     round1(formatScore),
		ContentScore:    round1(contentScore),
		RelevanceScore:  round1(relevanceScore),
		ATSScore:        round1(atsScore),
		Recommendations: s.recommendations(keywordScore, formatScore, contentScore, relevanceScore, atsScore),
		Strengths:       s.strengths(resume),
		Improvements:    s.improvements(resume),
		EvaluationID:    uuid.New().String(),
		EvaluatedAt:     time.Now().Unix(),
	}
	return report, nil
}

// FaultReport 评分失败时的零分报告
func FaultReport(detail string) *types.ScoreReport {
	return &types.ScoreReport{
		OverallScore:    0.0,
		Error:           "Scoring failed: " + detail,
		Recommendations: []string{"Please try uploading your resume again."},
		EvaluationID:    uuid.New().String(),
		EvaluatedAt:     time.Now().Unix(),
	}
}

// keywordScore 关键词命中率按阶梯折算分数
func (s *HeuristicResumeScorer) keywordScore(resumeText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	lower := strings.ToLower(resumeText)
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			matched++
		}
	}

	matchPercentage := float64(matched) / float64(len(keywords)) * 100

	switch {
	case matchPercentage >= 80:
		return 95.0
	case matchPercentage >= 60:
		return 85.0
	case matchPercentage >= 40:
		return 70.0
	case matchPercentage >= 20:
		return 55.0
	default:
		return 30.0
	}
}

// formatScore 结构完整性：各核心章节是否存在
func (s *HeuristicResumeScorer) formatScore(resume *types.StructuredResume) float64 {
	score := 0.0

	if resume.Summary != "" {
		score += 20
	}
	if len(resume.Skills) > 0 {
		score += 25
	}
	if len(resume.Experience) > 0 {
		score += 25
	}
	if len(resume.Education) > 0 {
		score += 15
	}
	if !resume.Contact.IsEmpty() {
		score += 15
	}

	return math.Min(score, 100.0)
}

// contentScore 内容质量：总结长度、技能数量、经历深度、项目加分
func (s *HeuristicResumeScorer) contentScore(resume *types.StructuredResume) float64 {
	score := 0.0

	// 总结质量
	summaryLen := len(resume.Summary)
	if resume.Summary != "" {
		switch {
		case summaryLen >= 100:
			score += 20
		case summaryLen >= 50:
			score += 15
		default:
			score += 5
		}
	}

	// 技能数量
	switch {
	case len(resume.Skills) >= 10:
		score += 25
	case len(resume.Skills) >= 5:
		score += 20
	case len(resume.Skills) >= 3:
		score += 15
	}

	// 经历深度按平均描述长度衡量
	if len(resume.Experience) > 0 {
		total := 0
		for _, exp := range resume.Experience {
			total += len(exp)
		}
		avgLen := float64(total) / float64(len(resume.Experience))
		switch {
		case avgLen >= 200:
			score += 30
		case avgLen >= 100:
			score += 25
		case avgLen >= 50:
			score += 15
		}
	}

	// 项目加分，封顶25
	if len(resume.Projects) > 0 {
		score += math.Min(float64(len(resume.Projects))*5, 25)
	}

	return math.Min(score, 100.0)
}

// relevanceScore 基于词集重合率的岗位相关性
func (s *HeuristicResumeScorer) relevanceScore(resumeText string, jobDescription string) float64 {
	if jobDescription == "" {
		return constants.DefaultRelevanceScore
	}

	jobWords := wordSet(jobDescription)
	resumeWords := wordSet(resumeText)

	if len(jobWords) == 0 {
		return 0.0
	}

	common := 0
	for word := range jobWords {
		if resumeWords[word] {
			common++
		}
	}

	ratio := float64(common) / float64(len(jobWords))
	return math.Min(ratio*100, 100.0)
}

// atsCompatibility ATS兼容性
// 基准100分，特殊字符超限和缺联系方式扣分，标准章节加分
// 分数只设下限，各章节齐全时可超过100
func (s *HeuristicResumeScorer) atsCompatibility(resume *types.StructuredResume, resumeText string) float64 {
	score := 100.0

	specialChars := len(specialCharRe.FindAllString(resumeText, -1))
	if specialChars > constants.ATSSpecialCharLimit {
		score -= 10
	}

	if resume.Contact.IsEmpty() {
		score -= 15
	}

	if resume.Summary != "" {
		score += 5
	}
	if len(resume.Skills) > 0 {
		score += 5
	}
	if len(resume.Experience) > 0 {
		score += 5
	}
	if len(resume.Education) > 0 {
		score += 5
	}

	return math.Max(score, 0.0)
}

// recommendations 按子分数阈值生成改进建议
func (s *HeuristicResumeScorer) recommendations(keywordScore, formatScore, contentScore, relevanceScore, atsScore float64) []string {
	var recommendations []string

	if keywordScore < 70 {
		recommendations = append(recommendations, "Include more relevant keywords from the job description")
	}
	if formatScore < 80 {
		recommendations = append(recommendations, "Improve resume structure by adding missing sections")
	}
	if contentScore < 70 {
		recommendations = append(recommendations, "Expand descriptions and add more detailed accomplishments")
	}
	if relevanceScore < 70 {
		recommendations = append(recommendations, "Better align your experience with the job requirements")
	}
	if atsScore < 80 {
		recommendations = append(recommendations, "Optimize for ATS compatibility by using standard formatting")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Great job! Your resume is well-optimized for this position")
	}

	return recommendations
}

// strengths 识别简历亮点
func (s *HeuristicResumeScorer) strengths(resume *types.StructuredResume) []string {
	var strengths []string

	if len(resume.Summary) > 100 {
		strengths = append(strengths, "Strong professional summary")
	}
	if len(resume.Skills) >= 8 {
		strengths = append(strengths, "Comprehensive skills section")
	}
	if len(resume.Experience) >= 3 {
		strengths = append(strengths, "Solid work experience")
	}
	if len(resume.Projects) > 0 {
		strengths = append(strengths, "Relevant project experience")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Resume shows potential for improvement")
	}
	return strengths
}

// improvements 给出具体改进项
func (s *HeuristicResumeScorer) improvements(resume *types.StructuredResume) []string {
	var improvements []string

	if resume.Summary == "" {
		improvements = append(improvements, "Add a professional summary at the top")
	}
	if len(resume.Skills) < 5 {
		improvements = append(improvements, "Include more relevant technical and soft skills")
	}
	if len(resume.Projects) == 0 {
		improvements = append(improvements, "Add relevant projects to showcase your abilities")
	}

	for _, exp := range resume.Experience {
		if len(exp) < 100 {
			improvements = append(improvements, "Expand experience descriptions with specific achievements")
			break
		}
	}

	if len(improvements) == 0 {
		improvements = append(improvements, "Consider tailoring content more specifically to this role")
	}
	return improvements
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func wordSet(text string) map[string]bool {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
