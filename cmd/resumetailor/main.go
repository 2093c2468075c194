package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"resume-optimizer-go/internal/agent"
	"resume-optimizer-go/internal/config"
	appLogger "resume-optimizer-go/internal/logger"
	"resume-optimizer-go/internal/parser"
	"resume-optimizer-go/internal/processor"
)

var (
	version     = "1.0.0"            //nolint:gochecknoglobals
	serviceName = "resume-optimizer" //nolint:gochecknoglobals
)

func main() {
	var (
		configPath string
		resumePath string
		jobPath    string
		outputPath string
	)
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "配置文件路径")
	pflag.StringVarP(&resumePath, "resume", "r", "", "简历文件路径(.pdf或.docx)")
	pflag.StringVarP(&jobPath, "job", "j", "", "岗位描述文本文件路径(可选)")
	pflag.StringVarP(&outputPath, "output", "o", "", "结果输出路径(默认stdout)")
	showVersion := pflag.Bool("version", false, "显示版本信息")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", serviceName, version)
		return
	}
	if resumePath == "" {
		fmt.Fprintln(os.Stderr, "必须通过 --resume 指定简历文件")
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	appLogger.Info().Str("config", configPath).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := buildService(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化简历处理服务失败")
	}

	resumeData, err := os.ReadFile(resumePath)
	if err != nil {
		appLogger.Fatal().Err(err).Str("path", resumePath).Msg("读取简历文件失败")
	}

	var jobDescription string
	if jobPath != "" {
		jobData, err := os.ReadFile(jobPath)
		if err != nil {
			appLogger.Fatal().Err(err).Str("path", jobPath).Msg("读取岗位描述失败")
		}
		jobDescription = string(jobData)
	}

	result, err := svc.ProcessResume(ctx, resumeData, resumePath, jobDescription)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("简历处理失败")
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		appLogger.Fatal().Err(err).Msg("序列化处理结果失败")
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(output, '\n'), 0644); err != nil {
			appLogger.Fatal().Err(err).Str("path", outputPath).Msg("写入结果文件失败")
		}
		appLogger.Info().Str("path", outputPath).Float64("overall_score", result.Report.OverallScore).Msg("处理完成")
		return
	}
	fmt.Println(string(output))
}

// buildService 组装全部处理组件
func buildService(ctx context.Context, cfg *config.Config) (processor.ResumeService, error) {
	var extractorLogger *log.Logger
	if cfg.Logger.Level == "debug" {
		extractorLogger = log.New(os.Stderr, "[ExtractorMain] ", log.LstdFlags)
	} else {
		extractorLogger = log.New(io.Discard, "", 0)
	}

	pdfExtractor, err := parser.NewEinoPDFLineExtractor(ctx,
		parser.WithEinoLogger(extractorLogger),
		parser.WithEinoTimeout(time.Duration(cfg.Extractor.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("创建PDF提取器失败: %w", err)
	}
	docxExtractor := parser.NewDocxLineExtractor(parser.WithDocxLogger(extractorLogger))

	components := processor.NewComponents(
		processor.WithcompPdfextractor(pdfExtractor),
		processor.WithcompDocxextractor(docxExtractor),
		processor.WithcompStructurer(parser.NewResumeStructurer(parser.WithStructurerLogger(extractorLogger))),
		processor.WithcompKeywordextractor(parser.NewJobKeywordExtractor()),
		processor.WithcompEnhancer(processor.NewKeywordResumeEnhancer()),
		processor.WithcompScorer(processor.NewHeuristicResumeScorer()),
	)

	useLLM := false
	if cfg.KeywordSuggester.Enabled && cfg.Aliyun.APIKey != "" {
		chatModel, err := agent.NewAliyunQwenChatModel(
			cfg.Aliyun.APIKey,
			cfg.GetModelForTask("keyword_extraction"),
			cfg.Aliyun.APIURL,
		)
		if err != nil {
			appLogger.Warn().Err(err).Msg("初始化通义千问模型失败，禁用LLM关键词补充")
		} else {
			components.KeywordSuggester = parser.NewLLMKeywordSuggester(chatModel,
				parser.WithSuggesterLogger(extractorLogger),
				parser.WithSuggesterTimeout(time.Duration(cfg.KeywordSuggester.TimeoutSeconds)*time.Second),
				parser.WithSuggesterMaxRetries(cfg.KeywordSuggester.MaxRetries),
			)
			useLLM = true
		}
	}

	settings := &processor.Settings{
		UseLLMKeywords: useLLM,
		Debug:          cfg.Logger.Level == "debug",
		Logger:         appLogger.Logger,
	}

	return processor.NewResumeService(components, settings)
}
