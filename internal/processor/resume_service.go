package processor

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-optimizer-go/internal/constants"
	"resume-optimizer-go/internal/logger"
	"resume-optimizer-go/internal/tracing"
	"resume-optimizer-go/internal/types"
	"resume-optimizer-go/pkg/utils"
)

// 定义公共错误类型，用于整个服务
var (
	ErrExtractorNotInit  = errors.New("extractor is not initialized")
	ErrStructurerNotInit = errors.New("structurer is not initialized")
	ErrKeywordsNotInit   = errors.New("keyword extractor is not initialized")
	ErrEnhancerNotInit   = errors.New("enhancer is not initialized")
	ErrScorerNotInit     = errors.New("scorer is not initialized")
)

// 定义tracer
var tracer = otel.Tracer("processor")

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 核心组件接口
	PDFExtractor     DocumentExtractor // PDF文本提取接口
	DocxExtractor    DocumentExtractor // DOCX文本提取接口
	Structurer       ResumeStructurer  // 简历结构化接口
	KeywordExtractor KeywordExtractor  // 岗位关键词提取接口
	KeywordSuggester KeywordSuggester  // LLM关键词补充接口（可选）
	Enhancer         ResumeEnhancer    // 简历增强接口
	Scorer           ResumeScorer      // 简历评分接口
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	UseLLMKeywords bool           // 是否启用LLM关键词补充
	Debug          bool           // 是否开启调试模式
	Logger         zerolog.Logger // 日志记录器
}

// ResumeService 定义简历处理服务的接口
// 提供统一的服务层接口，隐藏内部实现细节
type ResumeService interface {
	// ParseResume 从文档字节提取并结构化简历
	ParseResume(ctx context.Context, data []byte, uri string) (*types.StructuredResume, error)

	// ExtractJobKeywords 提取岗位描述关键词
	ExtractJobKeywords(ctx context.Context, jobDescription string) ([]string, error)

	// EnhanceResume 依据岗位关键词增强简历
	EnhanceResume(ctx context.Context, resume *types.StructuredResume, keywords []string) (*types.StructuredResume, error)

	// ScoreResume 计算简历与岗位的多维匹配分数
	ScoreResume(ctx context.Context, resume *types.StructuredResume, jobDescription string, keywords []string) (*types.ScoreReport, error)

	// ProcessResume 端到端处理：提取、结构化、关键词、增强、评分
	ProcessResume(ctx context.Context, data []byte, uri string, jobDescription string) (*ProcessResult, error)
}

// resumeServiceImpl 是ResumeService的实现
// 采用Facade模式，内部持有所有需要的组件，但不暴露给外部
type resumeServiceImpl struct {
	components *Components
	settings   *Settings
}

// NewResumeService 创建简历处理服务
// 除 KeywordSuggester 外的组件都是必需的
func NewResumeService(comp *Components, set *Settings, opts ...SettingOpt) (ResumeService, error) {
	if comp == nil {
		comp = &Components{}
	}
	if set == nil {
		set = &Settings{Logger: logger.Logger}
	}

	for _, opt := range opts {
		opt(set)
	}

	if comp.PDFExtractor == nil || comp.DocxExtractor == nil {
		return nil, ErrExtractorNotInit
	}
	if comp.Structurer == nil {
		return nil, ErrStructurerNotInit
	}
	if comp.KeywordExtractor == nil {
		return nil, ErrKeywordsNotInit
	}
	if comp.Enhancer == nil {
		return nil, ErrEnhancerNotInit
	}
	if comp.Scorer == nil {
		return nil, ErrScorerNotInit
	}

	return &resumeServiceImpl{
		components: comp,
		settings:   set,
	}, nil
}

// ParseResume 提取文档文本并结构化
// 提取或结构化失败时返回保底简历数据和原始错误，调用方总能拿到可用的数据
func (s *resumeServiceImpl) ParseResume(ctx context.Context, data []byte, uri string) (*types.StructuredResume, error) {
	ctx, span := tracer.Start(ctx, "ParseResume",
		trace.WithAttributes(
			attribute.String("document_uri", tracing.SafeAttributeValue("document_uri", uri, tracing.DefaultMaxLength)),
			attribute.Int("document_size_bytes", len(data)),
		))
	defer span.End()

	extractor := s.selectExtractor(uri)

	lines, metadata, err := extractor.ExtractLinesFromBytes(ctx, data, uri)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		s.settings.Logger.Error().Err(err).Str("uri", uri).Msg("文档提取失败，返回保底简历")
		return types.DefaultResume(), NewDocumentError("extract", err.Error())
	}
	span.SetAttributes(attribute.Int("line_count", len(lines)))

	if s.settings.Debug {
		s.settings.Logger.Debug().
			Str("uri", uri).
			Str("content_md5", utils.CalculateMD5(data)).
			Interface("metadata", metadata).
			Msg("文档提取完成")
	}

	resume, err := s.components.Structurer.Structure(ctx, lines)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStructuring)
		s.settings.Logger.Error().Err(err).Str("uri", uri).Msg("简历结构化失败，返回保底简历")
		return types.DefaultResume(), NewParsingError("structure", err.Error())
	}

	span.SetAttributes(
		attribute.Int("skill_count", len(resume.Skills)),
		attribute.Int("experience_count", len(resume.Experience)),
		attribute.String("resume_summary", tracing.SafeResumeContent(resume.Summary)),
	)
	return resume, nil
}

// ExtractJobKeywords 提取岗位关键词
// 启用LLM补充时规则结果与LLM结果合并，LLM失败只降级不报错
func (s *resumeServiceImpl) ExtractJobKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ExtractJobKeywords",
		trace.WithAttributes(
			attribute.String("job_description", tracing.SafeJobDescription(jobDescription)),
		))
	defer span.End()

	keywords, err := s.components.KeywordExtractor.ExtractKeywords(ctx, jobDescription)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, err
	}

	if s.settings.UseLLMKeywords && s.components.KeywordSuggester != nil {
		suggested, err := s.components.KeywordSuggester.SuggestKeywords(ctx, jobDescription)
		if err != nil {
			// LLM是补充手段，失败时记录后继续使用规则结果
			span.SetAttributes(
				attribute.Bool("llm_degraded", true),
				attribute.String("llm_error.type", string(tracing.ErrorTypeLLM)),
			)
			s.settings.Logger.Warn().Err(err).Msg("LLM关键词补充失败，使用规则提取结果")
		} else {
			keywords = mergeKeywords(keywords, suggested)
		}
	}

	span.SetAttributes(
		attribute.Int("keyword_count", len(keywords)),
		attribute.String("keywords", tracing.SafeKeywordList(keywords)),
	)
	return keywords, nil
}

// EnhanceResume 增强简历内容
func (s *resumeServiceImpl) EnhanceResume(ctx context.Context, resume *types.StructuredResume, keywords []string) (*types.StructuredResume, error) {
	ctx, span := tracer.Start(ctx, "EnhanceResume",
		trace.WithAttributes(
			attribute.Int("keyword_count", len(keywords)),
		))
	defer span.End()

	enhanced, err := s.components.Enhancer.Enhance(ctx, resume, keywords)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		s.settings.Logger.Error().Err(err).Msg("简历增强失败，返回原始简历")
		return resume, err
	}
	return enhanced, nil
}

// ScoreResume 计算简历评分
func (s *resumeServiceImpl) ScoreResume(ctx context.Context, resume *types.StructuredResume, jobDescription string, keywords []string) (*types.ScoreReport, error) {
	ctx, span := tracer.Start(ctx, "ScoreResume",
		trace.WithAttributes(
			attribute.Int("keyword_count", len(keywords)),
		))
	defer span.End()

	report, err := s.components.Scorer.Score(ctx, resume, jobDescription, keywords)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeScoring)
		s.settings.Logger.Error().Err(err).Msg("简历评分失败，返回零分报告")
		return FaultReport(err.Error()), nil
	}

	span.SetAttributes(
		attribute.Float64("overall_score", report.OverallScore),
		attribute.String("evaluation_id", report.EvaluationID),
	)
	return report, nil
}

// ProcessResume 端到端处理简历
// 每个阶段都有降级路径，整个流程只在上下文取消时返回错误
func (s *resumeServiceImpl) ProcessResume(ctx context.Context, data []byte, uri string, jobDescription string) (*ProcessResult, error) {
	ctx, span := tracer.Start(ctx, "ProcessResume",
		trace.WithAttributes(
			attribute.String("document_uri", tracing.SafeAttributeValue("document_uri", uri, tracing.DefaultMaxLength)),
			attribute.Int("document_size_bytes", len(data)),
		))
	defer span.End()

	resume, parseErr := s.ParseResume(ctx, data, uri)
	if parseErr != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.settings.Logger.Warn().Err(parseErr).Str("uri", uri).Msg("简历解析降级")
	}

	keywords, err := s.ExtractJobKeywords(ctx, jobDescription)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.settings.Logger.Warn().Err(err).Msg("关键词提取降级，使用保底关键词")
		keywords = s.components.KeywordExtractor.FallbackKeywords(jobDescription)
	}

	enhanced, err := s.EnhanceResume(ctx, resume, keywords)
	if err != nil {
		enhanced = resume
	}

	report, err := s.ScoreResume(ctx, enhanced, jobDescription, keywords)
	if err != nil {
		report = FaultReport(err.Error())
	}

	span.SetAttributes(attribute.Float64("overall_score", report.OverallScore))
	return &ProcessResult{
		Resume:   resume,
		Keywords: keywords,
		Enhanced: enhanced,
		Report:   report,
	}, nil
}

// selectExtractor 按文件后缀选择提取器，非PDF一律按DOCX处理
func (s *resumeServiceImpl) selectExtractor(uri string) DocumentExtractor {
	if strings.HasSuffix(strings.ToLower(uri), ".pdf") {
		return s.components.PDFExtractor
	}
	return s.components.DocxExtractor
}

// mergeKeywords 合并规则结果与LLM补充结果，保持先后顺序去重，合并后仍受关键词总数上限约束
func mergeKeywords(primary, supplement []string) []string {
	seen := make(map[string]bool, len(primary)+len(supplement))
	merged := make([]string, 0, len(primary)+len(supplement))
	for _, kw := range primary {
		if !seen[kw] {
			seen[kw] = true
			merged = append(merged, kw)
		}
	}
	for _, kw := range supplement {
		if !seen[kw] {
			seen[kw] = true
			merged = append(merged, kw)
		}
	}
	if len(merged) > constants.MaxJobKeywords {
		merged = merged[:constants.MaxJobKeywords]
	}
	return merged
}
