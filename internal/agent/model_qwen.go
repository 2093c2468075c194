package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	// DashScope 的 OpenAI 兼容接口
	openAICompatibleQwenAPIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	defaultQwenModelName       = "qwen-plus"
)

// AliyunQwenChatModel 实现 model.ToolCallingChatModel 接口，
// 用于与阿里云通义千问模型交互。本服务只使用纯文本生成，不绑定工具。
type AliyunQwenChatModel struct {
	apiKey     string
	modelName  string
	apiURL     string
	httpClient *http.Client
}

// NewAliyunQwenChatModel 创建一个新的 AliyunQwenChatModel 实例。
func NewAliyunQwenChatModel(apiKey string, modelName string, apiURL string) (*AliyunQwenChatModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API 密钥不能为空")
	}

	mn := modelName
	if strings.TrimSpace(mn) == "" {
		mn = defaultQwenModelName
	}

	url := apiURL
	if strings.TrimSpace(url) == "" {
		url = openAICompatibleQwenAPIURL
	}

	return &AliyunQwenChatModel{
		apiKey:     apiKey,
		modelName:  mn,
		apiURL:     url,
		httpClient: &http.Client{},
	}, nil
}

// --- OpenAI Compatible Request/Response Structures ---

type openAIChatCompletionRequest struct {
	Model    string            `json:"model"`
	Messages []*schema.Message `json:"messages"` // schema.Message 的 role/content 字段与OpenAI格式兼容
}

type openAIMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

type openAIChatChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAICompletionResponse struct {
	Id      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []openAIChatChoice `json:"choices"`
}

// Generate 实现 model.ChatModel 接口
func (aq *AliyunQwenChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	for _, opt := range options {
		_ = opt // 本实现不处理额外调用选项
	}

	reqPayload := openAIChatCompletionRequest{
		Model:    aq.modelName,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("序列化请求体失败: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, aq.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建 HTTP 请求失败: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+aq.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := aq.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("发送 HTTP 请求失败: %w", err)
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API 请求失败，状态 %s: %s", httpResp.Status, string(bodyBytes))
	}

	var openAIResp openAICompletionResponse
	if err := json.Unmarshal(bodyBytes, &openAIResp); err != nil {
		return nil, fmt.Errorf("反序列化 API 响应失败: %w。响应体: %s", err, string(bodyBytes))
	}

	if len(openAIResp.Choices) == 0 {
		return nil, fmt.Errorf("从 API 收到空选项: %s", string(bodyBytes))
	}

	apiMessage := openAIResp.Choices[0].Message
	responseContent := ""
	if apiMessage.Content != nil {
		responseContent = *apiMessage.Content
	}

	resultMessage := &schema.Message{
		Role:    schema.RoleType(apiMessage.Role),
		Content: responseContent,
	}

	if resultMessage.Role == "" {
		resultMessage.Role = schema.RoleType("assistant")
	}

	return resultMessage, nil
}

// Stream 实现 model.ChatModel 接口 (placeholder)
func (aq *AliyunQwenChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("AliyunQwenChatModel (OpenAI 兼容) 的 Stream 方法未实现")
}

// BindTools 实现 model.ChatModel 接口。
// 关键词提取只需要纯文本生成，不支持工具绑定。
func (aq *AliyunQwenChatModel) BindTools(tools []*schema.ToolInfo) error {
	if len(tools) > 0 {
		log.Printf("[阿里云通义千问模型] 本实现不支持工具绑定，忽略了 %d 个工具。", len(tools))
	}
	return nil
}

// WithTools 方法是为了满足 model.ToolCallingChatModel 接口。
func (aq *AliyunQwenChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if len(tools) > 0 {
		log.Printf("[阿里云通义千问模型] 本实现不支持工具绑定，忽略了 %d 个工具。", len(tools))
	}
	return aq, nil
}

var _ model.ChatModel = (*AliyunQwenChatModel)(nil)
var _ model.ToolCallingChatModel = (*AliyunQwenChatModel)(nil)
