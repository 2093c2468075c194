package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer-go/internal/types"
)

// TestEnhanceSummary 测试总结的关键词增强
func TestEnhanceSummary(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	resume := &types.StructuredResume{
		Summary: "Backend developer focused on reliability.",
	}
	keywords := []string{"Python", "Docker", "AWS", "Kubernetes", "5+ Years Experience"}

	enhanced, err := enhancer.Enhance(context.Background(), resume, keywords)
	require.NoError(t, err, "增强不应返回错误")

	// 带数字的经验年限类关键词不进总结
	assert.Equal(t,
		"Backend developer focused on reliability. Experienced in Python, Docker, AWS and Kubernetes.",
		enhanced.Summary, "增强后的总结与预期不符")
}

// TestEnhanceSummaryDefault 测试空总结时使用默认总结
func TestEnhanceSummaryDefault(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	enhanced, err := enhancer.Enhance(context.Background(), &types.StructuredResume{}, []string{"Python"})
	require.NoError(t, err)

	assert.Equal(t,
		"Experienced professional with strong technical skills. Experienced in Python.",
		enhanced.Summary, "空总结应先替换为默认总结再增强")
}

// TestEnhanceSkills 测试技能补充与排序
func TestEnhanceSkills(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	resume := &types.StructuredResume{
		Skills: []string{"Linux", "Python Programming"},
	}
	keywords := []string{"Python", "Docker"}

	enhanced, err := enhancer.Enhance(context.Background(), resume, keywords)
	require.NoError(t, err)

	// "Python Programming" 已覆盖 Python 要求，Docker 被补充；命中要求的技能排在前面
	assert.Equal(t, []string{"Python Programming", "Docker", "Linux"}, enhanced.Skills, "增强后的技能列表与预期不符")
}

// TestEnhanceSkillsIdempotent 对已增强的技能列表再次增强应保持不变
func TestEnhanceSkillsIdempotent(t *testing.T) {
	keywords := []string{"Python", "Docker"}
	once := enhanceSkills([]string{"Linux", "Python Programming"}, keywords)
	twice := enhanceSkills(once, keywords)

	assert.Equal(t, once, twice, "重复增强不应改变技能列表")
}

// TestEnhanceExperience 测试经历条目的关键词补充
func TestEnhanceExperience(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	longEntry := "Led the migration of a monolithic billing system to distributed services over two quarters."
	longWithKeyword := "Built python tooling for the data platform team and maintained ingestion pipelines daily."
	shortEntry := "Intern at Acme."

	resume := &types.StructuredResume{
		Experience: []string{longEntry, longWithKeyword, shortEntry},
	}
	keywords := []string{"Python", "Docker", "AWS"}

	enhanced, err := enhancer.Enhance(context.Background(), resume, keywords)
	require.NoError(t, err)

	require.Len(t, enhanced.Experience, 3)
	// 只考虑前两个技术关键词，补充第一个未提及的
	assert.Equal(t, longEntry+" Utilized Python for improved performance.", enhanced.Experience[0], "缺少关键词的长条目应被补充")
	assert.Equal(t, longWithKeyword+" Utilized Docker for improved performance.", enhanced.Experience[1], "已含首个关键词的条目应补充下一个")
	assert.Equal(t, shortEntry, enhanced.Experience[2], "过短的条目不应被修改")
}

// TestEnhanceProjects 测试项目增强与合成
func TestEnhanceProjects(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	project := "Developed an internal dashboard for tracking deployment metrics."
	resume := &types.StructuredResume{
		Projects: []string{project},
	}
	keywords := []string{"Python", "Docker"}

	enhanced, err := enhancer.Enhance(context.Background(), resume, keywords)
	require.NoError(t, err)

	require.Len(t, enhanced.Projects, 2, "不足两个项目时应合成一个")
	assert.Equal(t, project+" Implemented using Python.", enhanced.Projects[0], "足够详实的项目应补充技术关键词")
	assert.Equal(t, "Personal project demonstrating proficiency in Python and Docker", enhanced.Projects[1], "合成项目的描述与预期不符")
}

// TestEnhanceDoesNotMutateOriginal 验证增强在副本上进行
func TestEnhanceDoesNotMutateOriginal(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	original := &types.StructuredResume{
		Summary: "Backend developer.",
		Skills:  []string{"Linux"},
	}

	enhanced, err := enhancer.Enhance(context.Background(), original, []string{"Python"})
	require.NoError(t, err)

	assert.Equal(t, "Backend developer.", original.Summary, "原始总结不应被修改")
	assert.Equal(t, []string{"Linux"}, original.Skills, "原始技能不应被修改")
	assert.Empty(t, original.JobRequirements, "原始简历不应记录岗位要求")
	assert.Equal(t, []string{"Python"}, enhanced.JobRequirements, "增强结果应记录本次使用的关键词")
}

// TestEnhanceNilResume 测试空简历输入
func TestEnhanceNilResume(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	_, err := enhancer.Enhance(context.Background(), nil, []string{"Python"})
	require.Error(t, err, "空简历应返回错误")
	assert.ErrorIs(t, err, ErrParsingFailed, "错误类型应为结构化失败")
}

// TestEnhanceContextCancelled 测试上下文取消时原样返回
func TestEnhanceContextCancelled(t *testing.T) {
	enhancer := NewKeywordResumeEnhancer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resume := &types.StructuredResume{Summary: "Original."}
	result, err := enhancer.Enhance(ctx, resume, []string{"Python"})
	require.NoError(t, err, "上下文取消时不应返回错误")
	assert.Same(t, resume, result, "上下文取消时应原样返回输入")
}
