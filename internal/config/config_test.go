package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigWithCorrectMapSyntax 验证当 YAML 语法正确时，配置能否被成功加载
func TestLoadConfigWithCorrectMapSyntax(t *testing.T) {
	// 1. 创建一个临时的 YAML 配置文件，内容包含正确的 map 结构
	correctYAMLContent := `
aliyun:
  api_key: "test-key"
  model: "qwen-plus"
  task_models:
    keyword_extraction: "qwen-turbo"
keyword_suggester:
  enabled: true
  timeout_seconds: 45
  max_retries: 3
`
	// 创建一个临时目录来存放配置文件
	tmpDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir) // 测试结束后清理目录

	// 配置文件路径
	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(correctYAMLContent), 0644)
	require.NoError(t, err, "无法写入临时配置文件")

	// 2. 调用 LoadConfig 函数加载配置
	config, err := LoadConfig(configPath)

	// 3. 断言结果
	require.NoError(t, err, "加载具有正确语法的配置不应返回错误")
	require.NotNil(t, config, "配置对象不应为 nil")

	assert.Equal(t, "test-key", config.Aliyun.APIKey, "Aliyun.APIKey 的值与预期不符")
	assert.Equal(t, "qwen-plus", config.Aliyun.Model, "Aliyun.Model 的值与预期不符")

	// 验证 task_models
	expectedTaskModels := map[string]string{
		"keyword_extraction": "qwen-turbo",
	}
	assert.Equal(t, expectedTaskModels, config.Aliyun.TaskModels, "Aliyun.TaskModels 的值与预期不符")

	// 验证 keyword_suggester
	assert.True(t, config.KeywordSuggester.Enabled, "KeywordSuggester.Enabled 的值与预期不符")
	assert.Equal(t, 45, config.KeywordSuggester.TimeoutSeconds, "KeywordSuggester.TimeoutSeconds 的值与预期不符")
	assert.Equal(t, 3, config.KeywordSuggester.MaxRetries, "KeywordSuggester.MaxRetries 的值与预期不符")
}

// TestLoadConfigWithIncorrectMapSyntax 验证当 YAML 缩进错误时，map 字段无法被正确解析
func TestLoadConfigWithIncorrectMapSyntax(t *testing.T) {
	// 1. 创建一个包含错误缩进的 YAML 配置文件
	incorrectYAMLContent := `
aliyun:
  model: "qwen-plus"
  task_models: # map类型
  keyword_extraction: "qwen-turbo"
`
	tmpDir, err := os.MkdirTemp("", "config-test-incorrect")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(incorrectYAMLContent), 0644)
	require.NoError(t, err)

	// 2. 加载配置
	config, err := LoadConfig(configPath)

	// 3. 断言结果
	// go-yaml/v3 在解析这种格式时不会报错，但会将 task_models 解析为空 map
	require.NoError(t, err, "加载语法错误的配置也不应立即报错")
	require.NotNil(t, config, "配置对象不应为 nil")

	// 关键断言：因为缩进错误，task_models 这个 map 应该是空的 (nil or len 0)
	assert.Empty(t, config.Aliyun.TaskModels, "由于缩进错误，TaskModels map 应该是空的")
}

// TestLoadConfigMissingFile 验证显式指定的配置文件不存在时返回错误
func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(os.TempDir(), "definitely-not-exist", "config.yaml"))
	require.Error(t, err, "显式指定的配置文件缺失时应返回错误")
	assert.Nil(t, config, "出错时不应返回配置对象")
}

// TestDefaultConfig 验证默认配置的关键默认值
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NotNil(t, config)

	assert.Equal(t, 30, config.Extractor.TimeoutSeconds, "提取超时默认值与预期不符")
	assert.Equal(t, 60, config.KeywordSuggester.TimeoutSeconds, "LLM调用超时默认值与预期不符")
	assert.Equal(t, "info", config.Logger.Level, "日志级别默认值与预期不符")
	assert.Equal(t, "json", config.Logger.Format, "日志格式默认值与预期不符")
}

// TestGetModelForTask 验证任务模型选择的回退逻辑
func TestGetModelForTask(t *testing.T) {
	config := DefaultConfig()
	config.Aliyun.Model = "qwen-plus"
	config.Aliyun.TaskModels = map[string]string{"keyword_extraction": "qwen-turbo"}

	assert.Equal(t, "qwen-turbo", config.GetModelForTask("keyword_extraction"), "已配置任务应使用专用模型")
	assert.Equal(t, "qwen-plus", config.GetModelForTask("unknown_task"), "未配置任务应回退到默认模型")
}
