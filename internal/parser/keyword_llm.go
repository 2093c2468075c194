package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	einoschema "github.com/cloudwego/eino/schema"

	"resume-optimizer-go/internal/constants"
)

// LLMKeywordSuggester 使用LLM为岗位描述补充关键词
// 作为规则提取的补充，失败时调用方回退到规则结果
type LLMKeywordSuggester struct {
	// LLM模型接口
	llmModel model.ToolCallingChatModel

	// 提示词模板
	promptTemplate string

	// 单次调用超时
	callTimeout time.Duration

	// 最大重试次数
	maxRetries int

	logger *log.Logger
}

// llmKeywordResponse LLM返回的关键词结构
type llmKeywordResponse struct {
	Keywords []string `json:"keywords"`
}

// LLMSuggesterOption LLM关键词提取器的配置选项
type LLMSuggesterOption func(*LLMKeywordSuggester)

// WithSuggesterLogger 设置日志记录器
func WithSuggesterLogger(logger *log.Logger) LLMSuggesterOption {
	return func(s *LLMKeywordSuggester) {
		s.logger = logger
	}
}

// WithSuggesterTimeout 设置单次调用超时
func WithSuggesterTimeout(timeout time.Duration) LLMSuggesterOption {
	return func(s *LLMKeywordSuggester) {
		s.callTimeout = timeout
	}
}

// WithSuggesterMaxRetries 设置最大重试次数
func WithSuggesterMaxRetries(n int) LLMSuggesterOption {
	return func(s *LLMKeywordSuggester) {
		s.maxRetries = n
	}
}

// NewLLMKeywordSuggester 创建新的LLM关键词提取器
func NewLLMKeywordSuggester(llmModel model.ToolCallingChatModel, options ...LLMSuggesterOption) *LLMKeywordSuggester {
	s := &LLMKeywordSuggester{
		llmModel:    llmModel,
		callTimeout: 60 * time.Second,
		maxRetries:  2,
		logger:      log.New(io.Discard, "", 0),
	}

	for _, opt := range options {
		opt(s)
	}

	if s.promptTemplate == "" {
		s.promptTemplate = defaultKeywordPrompt
	}

	return s
}

const defaultKeywordPrompt = `你是一个专业的岗位描述分析专家，专注于从岗位描述中提取对简历匹配最重要的关键词。

核心任务：
1. 提取技术技能：编程语言、框架、云平台、数据库、开发工具等。
2. 提取硬性要求：经验年限（如 "5+ years experience"）、学历要求（如 "Bachelor's Degree"）。
3. 提取技术领域词：如 cloud、backend、testing、architecture 等。
4. 输出标准JSON：严格按照指定的JSON格式输出结果。

重要指令：
- 关键词保持岗位描述中的原始拼写，首字母大写。
- 最多输出15个关键词，按重要程度排序。
- 请勿编造岗位描述中不存在的技能或要求。

JSON输出格式规范：
{
  "keywords": ["string"]
}

请严格按照上述JSON格式规范输出，不要包含任何解释性文字或Markdown标记。
接下来，你将收到一份岗位描述，请对其进行分析。`

// SuggestKeywords 调用LLM提取岗位关键词
func (s *LLMKeywordSuggester) SuggestKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	response, err := s.callLLM(ctx, s.promptTemplate, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("LLM调用失败: %w", err)
	}

	keywords, err := s.parseResponse(response)
	if err != nil {
		return nil, fmt.Errorf("解析LLM响应失败: %w", err)
	}

	keywords = dedupe(keywords)
	if len(keywords) > constants.MaxJobKeywords {
		keywords = keywords[:constants.MaxJobKeywords]
	}
	return keywords, nil
}

// callLLM 调用LLM处理提示词，带重试
func (s *LLMKeywordSuggester) callLLM(ctx context.Context, systemContent string, userContent string) (string, error) {
	messages := []*einoschema.Message{
		{Role: "system", Content: systemContent},
		{Role: "user", Content: userContent},
	}

	retryDelay := 2 * time.Second

	var response *einoschema.Message
	var err error

	s.logger.Printf("[LLMKeywordSuggester] User Prompt: %.50s...", userContent)

	for retry := 0; retry <= s.maxRetries; retry++ {
		if retry > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("上下文已取消: %w", ctx.Err())
			case <-time.After(retryDelay):
				// 退避时间指数增长
				retryDelay *= 2
				s.logger.Printf("重试LLM调用 (第%d次)", retry)
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		response, err = s.llmModel.Generate(callCtx, messages)
		cancel()

		if err == nil {
			break
		}

		if !isRetryableError(err) || retry >= s.maxRetries {
			s.logger.Printf("[LLMKeywordSuggester] LLM call final error after retries: %v", err)
			return "", fmt.Errorf("LLM Generate failed: %w", err)
		}
	}

	s.logger.Printf("[LLMKeywordSuggester] LLM Response: %.50s", response.Content)
	return response.Content, nil
}

// isRetryableError 判断错误是否应该重试
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host")
}

// parseResponse 解析LLM响应
func (s *LLMKeywordSuggester) parseResponse(response string) ([]string, error) {
	// 提取JSON部分（防止LLM返回的不是纯JSON）
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		s.logger.Printf("无法从LLM响应中提取有效的JSON。原始响应: %s", response)
		return nil, fmt.Errorf("无法从LLM响应中提取有效的JSON")
	}

	var result llmKeywordResponse
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("解析JSON失败: %w", err)
	}

	var keywords []string
	for _, kw := range result.Keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}

// 从文本中提取JSON
func extractJSON(text string) string {
	// 尝试使用正则表达式提取 ```json ... ``` 代码块中的内容
	re := regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// 如果正则没有匹配到，尝试寻找 JSON 的开始和结束位置作为回退
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	// 查找匹配的}
	level := 0
	for i := start; i < len(text); i++ {
		if text[i] == '{' {
			level++
		} else if text[i] == '}' {
			level--
			if level == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}
	return ""
}
