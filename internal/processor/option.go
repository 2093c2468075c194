package processor

import (
	"github.com/rs/zerolog"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// NewComponents 通过选项组装组件集合
func NewComponents(opts ...ComponentOpt) *Components {
	c := &Components{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ----- 组件选项 -----

// WithcompPdfextractor 设置PDF提取器
func WithcompPdfextractor(e DocumentExtractor) ComponentOpt {
	return func(c *Components) {
		c.PDFExtractor = e
	}
}

// WithcompDocxextractor 设置DOCX提取器
func WithcompDocxextractor(e DocumentExtractor) ComponentOpt {
	return func(c *Components) {
		c.DocxExtractor = e
	}
}

// WithcompStructurer 设置简历结构化器
func WithcompStructurer(s ResumeStructurer) ComponentOpt {
	return func(c *Components) {
		c.Structurer = s
	}
}

// WithcompKeywordextractor 设置岗位关键词提取器
func WithcompKeywordextractor(k KeywordExtractor) ComponentOpt {
	return func(c *Components) {
		c.KeywordExtractor = k
	}
}

// WithcompKeywordsuggester 设置LLM关键词补充器（可选组件）
func WithcompKeywordsuggester(k KeywordSuggester) ComponentOpt {
	return func(c *Components) {
		c.KeywordSuggester = k
	}
}

// WithcompEnhancer 设置简历增强器
func WithcompEnhancer(e ResumeEnhancer) ComponentOpt {
	return func(c *Components) {
		c.Enhancer = e
	}
}

// WithcompScorer 设置简历评分器
func WithcompScorer(s ResumeScorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = s
	}
}

// ----- 设置选项 -----

// WithsetUsellmkeywords 设置是否启用LLM关键词补充
func WithsetUsellmkeywords(use bool) SettingOpt {
	return func(s *Settings) {
		s.UseLLMKeywords = use
	}
}

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}
