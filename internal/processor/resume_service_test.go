package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-optimizer-go/internal/constants"
	"resume-optimizer-go/internal/types"
)

// 测试用文档提取器桩
type stubExtractor struct {
	lines []string
	err   error
}

func (s *stubExtractor) ExtractFromFile(ctx context.Context, filePath string) ([]string, map[string]interface{}, error) {
	return s.lines, nil, s.err
}

func (s *stubExtractor) ExtractLinesFromReader(ctx context.Context, reader io.Reader, uri string, size int64) ([]string, map[string]interface{}, error) {
	return s.lines, nil, s.err
}

func (s *stubExtractor) ExtractLinesFromBytes(ctx context.Context, data []byte, uri string) ([]string, map[string]interface{}, error) {
	return s.lines, nil, s.err
}

// 测试用结构化器桩
type stubStructurer struct {
	resume *types.StructuredResume
	err    error
	lines  []string
}

func (s *stubStructurer) Structure(ctx context.Context, lines []string) (*types.StructuredResume, error) {
	s.lines = lines
	return s.resume, s.err
}

// 测试用关键词提取器桩
type stubKeywordExtractor struct {
	keywords []string
	fallback []string
	err      error
}

func (s *stubKeywordExtractor) ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	return s.keywords, s.err
}

func (s *stubKeywordExtractor) FallbackKeywords(jobDescription string) []string {
	return s.fallback
}

// 测试用LLM关键词补充桩
type stubSuggester struct {
	keywords []string
	err      error
}

func (s *stubSuggester) SuggestKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	return s.keywords, s.err
}

func testComponents() *Components {
	return &Components{
		PDFExtractor:     &stubExtractor{lines: []string{"pdf line"}},
		DocxExtractor:    &stubExtractor{lines: []string{"docx line"}},
		Structurer:       &stubStructurer{resume: &types.StructuredResume{Summary: "stub"}},
		KeywordExtractor: &stubKeywordExtractor{keywords: []string{"Python"}},
		Enhancer:         NewKeywordResumeEnhancer(),
		Scorer:           NewHeuristicResumeScorer(),
	}
}

func testSettings() *Settings {
	return &Settings{Logger: zerolog.Nop()}
}

// TestNewComponentsOptions 测试通过选项组装组件
func TestNewComponentsOptions(t *testing.T) {
	extractor := &stubExtractor{}
	comp := NewComponents(
		WithcompPdfextractor(extractor),
		WithcompDocxextractor(extractor),
		WithcompStructurer(&stubStructurer{}),
		WithcompKeywordextractor(&stubKeywordExtractor{}),
		WithcompEnhancer(NewKeywordResumeEnhancer()),
		WithcompScorer(NewHeuristicResumeScorer()),
	)

	assert.NotNil(t, comp.PDFExtractor, "PDF提取器应被设置")
	assert.NotNil(t, comp.Scorer, "评分器应被设置")

	set := testSettings()
	svc, err := NewResumeService(comp, set, WithsetDebug(true), WithsetUsellmkeywords(false))
	require.NoError(t, err, "完整组件应通过校验")
	require.NotNil(t, svc)
	assert.True(t, set.Debug, "设置选项应生效")
}

// TestNewResumeServiceValidation 测试必需组件校验
func TestNewResumeServiceValidation(t *testing.T) {
	comp := testComponents()
	comp.Structurer = nil

	_, err := NewResumeService(comp, testSettings())
	require.Error(t, err, "缺少结构化器时应返回错误")
	assert.ErrorIs(t, err, ErrStructurerNotInit)

	_, err = NewResumeService(nil, testSettings())
	assert.Error(t, err, "无组件时应返回错误")
}

// TestParseResumeDispatch 测试按后缀选择提取器
func TestParseResumeDispatch(t *testing.T) {
	comp := testComponents()
	structurer := &stubStructurer{resume: &types.StructuredResume{Summary: "stub"}}
	comp.Structurer = structurer

	svc, err := NewResumeService(comp, testSettings())
	require.NoError(t, err)

	_, err = svc.ParseResume(context.Background(), []byte("data"), "resume.PDF")
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf line"}, structurer.lines, "PDF后缀应使用PDF提取器")

	_, err = svc.ParseResume(context.Background(), []byte("data"), "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{"docx line"}, structurer.lines, "非PDF后缀应使用DOCX提取器")
}

// TestParseResumeExtractFailure 测试提取失败时的保底简历
func TestParseResumeExtractFailure(t *testing.T) {
	comp := testComponents()
	comp.PDFExtractor = &stubExtractor{err: errors.New("corrupt file")}

	svc, err := NewResumeService(comp, testSettings())
	require.NoError(t, err)

	resume, err := svc.ParseResume(context.Background(), []byte("data"), "broken.pdf")
	require.Error(t, err, "提取失败应返回错误")
	assert.ErrorIs(t, err, ErrDocumentUnreadable, "错误类型应为文档无法读取")

	require.NotNil(t, resume, "提取失败时仍应返回保底简历")
	assert.Equal(t, types.DefaultResume().Summary, resume.Summary, "保底简历内容与预期不符")
}

// TestExtractJobKeywordsLLMMerge 测试LLM补充结果的合并
func TestExtractJobKeywordsLLMMerge(t *testing.T) {
	comp := testComponents()
	comp.KeywordExtractor = &stubKeywordExtractor{keywords: []string{"Python", "Docker"}}
	comp.KeywordSuggester = &stubSuggester{keywords: []string{"Docker", "Kubernetes"}}

	set := testSettings()
	set.UseLLMKeywords = true

	svc, err := NewResumeService(comp, set)
	require.NoError(t, err)

	keywords, err := svc.ExtractJobKeywords(context.Background(), "jd")
	require.NoError(t, err)

	// 规则结果在前，LLM补充去重后追加
	assert.Equal(t, []string{"Python", "Docker", "Kubernetes"}, keywords, "合并结果与预期不符")
}

// TestExtractJobKeywordsMergeCapped 合并LLM补充结果后仍应遵守关键词总数上限
func TestExtractJobKeywordsMergeCapped(t *testing.T) {
	ruleKeywords := make([]string, 0, constants.MaxJobKeywords)
	for i := 0; i < constants.MaxJobKeywords; i++ {
		ruleKeywords = append(ruleKeywords, fmt.Sprintf("Skill%d", i))
	}

	comp := testComponents()
	comp.KeywordExtractor = &stubKeywordExtractor{keywords: ruleKeywords}
	comp.KeywordSuggester = &stubSuggester{keywords: []string{"Extra1", "Extra2", "Extra3"}}

	set := testSettings()
	set.UseLLMKeywords = true

	svc, err := NewResumeService(comp, set)
	require.NoError(t, err)

	keywords, err := svc.ExtractJobKeywords(context.Background(), "jd")
	require.NoError(t, err)

	assert.Len(t, keywords, constants.MaxJobKeywords, "合并后的关键词数量应被截断到上限")
	assert.Equal(t, ruleKeywords, keywords, "规则结果已满时LLM补充应被截断丢弃")
}

// TestExtractJobKeywordsLLMFailure 测试LLM失败时回退规则结果
func TestExtractJobKeywordsLLMFailure(t *testing.T) {
	comp := testComponents()
	comp.KeywordExtractor = &stubKeywordExtractor{keywords: []string{"Python"}}
	comp.KeywordSuggester = &stubSuggester{err: errors.New("api unavailable")}

	set := testSettings()
	set.UseLLMKeywords = true

	svc, err := NewResumeService(comp, set)
	require.NoError(t, err)

	keywords, err := svc.ExtractJobKeywords(context.Background(), "jd")
	require.NoError(t, err, "LLM失败不应导致整体失败")
	assert.Equal(t, []string{"Python"}, keywords, "LLM失败时应使用规则结果")
}

// TestProcessResumeEndToEnd 测试端到端处理
func TestProcessResumeEndToEnd(t *testing.T) {
	comp := testComponents()
	comp.Structurer = &stubStructurer{resume: &types.StructuredResume{
		Summary: "Backend engineer with platform background.",
		Skills:  []string{"Python", "Linux", "Docker"},
	}}

	svc, err := NewResumeService(comp, testSettings())
	require.NoError(t, err)

	result, err := svc.ProcessResume(context.Background(), []byte("data"), "resume.pdf", "python role")
	require.NoError(t, err, "端到端处理不应返回错误")
	require.NotNil(t, result)

	assert.NotNil(t, result.Resume, "结果应包含结构化简历")
	assert.Equal(t, []string{"Python"}, result.Keywords, "结果应包含岗位关键词")
	require.NotNil(t, result.Enhanced, "结果应包含增强后的简历")
	assert.Contains(t, result.Enhanced.Summary, "Experienced in Python", "增强后的总结应包含关键词")
	require.NotNil(t, result.Report, "结果应包含评分报告")
	assert.Greater(t, result.Report.OverallScore, 0.0, "综合分数应大于0")
}

// TestProcessResumeDegradedExtraction 测试提取失败时的降级处理
func TestProcessResumeDegradedExtraction(t *testing.T) {
	comp := testComponents()
	comp.PDFExtractor = &stubExtractor{err: errors.New("corrupt file")}

	svc, err := NewResumeService(comp, testSettings())
	require.NoError(t, err)

	result, err := svc.ProcessResume(context.Background(), []byte("data"), "broken.pdf", "python role")
	require.NoError(t, err, "提取失败时端到端处理仍应成功")
	require.NotNil(t, result)

	assert.Equal(t, types.DefaultResume().Summary, result.Resume.Summary, "应使用保底简历继续处理")
	assert.NotNil(t, result.Report, "降级后仍应产出评分报告")
}

// TestProcessResumeContextCancelled 测试上下文取消时中止处理
func TestProcessResumeContextCancelled(t *testing.T) {
	comp := testComponents()
	comp.PDFExtractor = &stubExtractor{err: errors.New("context canceled")}

	svc, err := NewResumeService(comp, testSettings())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.ProcessResume(ctx, []byte("data"), "resume.pdf", "")
	assert.Error(t, err, "上下文已取消时应返回错误")
}
