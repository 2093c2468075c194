package processor

import (
	"context"
	"io"

	"resume-optimizer-go/internal/types"
)

// ProcessResult 端到端处理结果
type ProcessResult struct {
	// 结构化简历
	Resume *types.StructuredResume

	// 岗位关键词
	Keywords []string

	// 增强后的简历
	Enhanced *types.StructuredResume

	// 评分报告
	Report *types.ScoreReport

	// 提取的元数据
	Metadata map[string]interface{}
}

//
// 文档提取相关接口
//

// DocumentExtractor 文档文本提取器接口
type DocumentExtractor interface {
	// ExtractFromFile 从文档文件提取文本行和元数据
	ExtractFromFile(ctx context.Context, filePath string) ([]string, map[string]interface{}, error)

	// ExtractLinesFromReader 从io.Reader提取文本行和元数据
	// 参数：
	// - ctx: 上下文
	// - reader: 文档内容的读取器
	// - uri: 资源标识符（用于日志或元数据）
	// - size: 内容字节数（部分格式的解析器需要预知大小，未知时传0）
	// 返回：
	// - 非空文本行（已去除首尾空白）
	// - 附加的元数据（如页数、字符数等）
	// - 错误信息
	ExtractLinesFromReader(ctx context.Context, reader io.Reader, uri string, size int64) ([]string, map[string]interface{}, error)

	// ExtractLinesFromBytes 从字节数组提取文本行和元数据
	ExtractLinesFromBytes(ctx context.Context, data []byte, uri string) ([]string, map[string]interface{}, error)
}

//
// 简历结构化相关接口
//

// ResumeStructurer 简历结构化接口
type ResumeStructurer interface {
	// Structure 将文本行组织为结构化简历数据
	Structure(ctx context.Context, lines []string) (*types.StructuredResume, error)
}

//
// 岗位关键词相关接口
//

// KeywordExtractor 岗位描述关键词提取接口
type KeywordExtractor interface {
	// ExtractKeywords 从岗位描述提取关键词列表
	ExtractKeywords(ctx context.Context, jobDescription string) ([]string, error)

	// FallbackKeywords 保底关键词提取，主流程失败时使用
	FallbackKeywords(jobDescription string) []string
}

// KeywordSuggester 可选的LLM关键词补充接口
type KeywordSuggester interface {
	// SuggestKeywords 调用外部模型为岗位描述补充关键词
	SuggestKeywords(ctx context.Context, jobDescription string) ([]string, error)
}

//
// 简历增强与评分相关接口
//

// ResumeEnhancer 简历增强接口
type ResumeEnhancer interface {
	// Enhance 依据岗位关键词增强简历内容，返回新的简历数据
	Enhance(ctx context.Context, resume *types.StructuredResume, keywords []string) (*types.StructuredResume, error)
}

// ResumeScorer 简历评分接口
type ResumeScorer interface {
	// Score 计算简历与岗位的多维匹配分数
	Score(ctx context.Context, resume *types.StructuredResume, jobDescription string, keywords []string) (*types.ScoreReport, error)
}
