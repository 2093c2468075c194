package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	Aliyun struct {
		APIKey string `yaml:"api_key"`
		APIURL string `yaml:"api_url"`
		Model  string `yaml:"model"`
		// 任务专用模型，例如 {"keyword_extraction": "qwen-turbo"}
		TaskModels map[string]string `yaml:"task_models"`
	} `yaml:"aliyun"`

	// 提取器配置
	Extractor ExtractorConfig `yaml:"extractor"`

	// 关键词提取配置
	KeywordSuggester KeywordSuggesterConfig `yaml:"keyword_suggester"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// ExtractorConfig 文档提取配置
type ExtractorConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"` // 单次提取超时(秒)
}

// KeywordSuggesterConfig LLM关键词提取配置
type KeywordSuggesterConfig struct {
	Enabled        bool `yaml:"enabled"`         // 是否启用LLM辅助提取
	TimeoutSeconds int  `yaml:"timeout_seconds"` // 单次调用超时(秒)
	MaxRetries     int  `yaml:"max_retries"`     // 最大重试次数
}

// LoggerConfig 日志配置结构
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 未指定路径时在常见位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-optimizer", "config.yaml"),
		}

		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 仍未找到时返回默认配置，环境变量可以补齐API凭证
		if configPath == "" {
			return applyEnvOverrides(DefaultConfig()), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	return &config, nil
}

// DefaultConfig 返回一份带默认值的配置
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyEnvOverrides 环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) *Config {
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}
	if envURL := os.Getenv("ALIYUN_API_URL"); envURL != "" {
		config.Aliyun.APIURL = envURL
	}
	if envModel := os.Getenv("ALIYUN_MODEL"); envModel != "" {
		config.Aliyun.Model = envModel
	}
	return config
}

func applyDefaults(config *Config) {
	if config.Extractor.TimeoutSeconds <= 0 {
		config.Extractor.TimeoutSeconds = 30
	}
	if config.KeywordSuggester.TimeoutSeconds <= 0 {
		config.KeywordSuggester.TimeoutSeconds = 60
	}
	if config.KeywordSuggester.MaxRetries < 0 {
		config.KeywordSuggester.MaxRetries = 0
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
}

// GetModelForTask 根据任务名称获取合适的模型
// 任务未配置专用模型时回退到默认模型
func (c *Config) GetModelForTask(taskName string) string {
	if c.Aliyun.TaskModels != nil {
		if model, ok := c.Aliyun.TaskModels[taskName]; ok && model != "" {
			return model
		}
	}
	return c.Aliyun.Model
}
