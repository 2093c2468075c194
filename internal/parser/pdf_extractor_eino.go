package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFLineExtractor 使用 Eino PDF Parser 提取文本行
type EinoPDFLineExtractor struct {
	parser  *pdf.PDFParser
	timeout time.Duration
	logger  *log.Logger
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFLineExtractor)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoPDFOption {
	return func(e *EinoPDFLineExtractor) {
		e.logger = logger
	}
}

// WithEinoTimeout 配置单次解析超时
func WithEinoTimeout(timeout time.Duration) EinoPDFOption {
	return func(e *EinoPDFLineExtractor) {
		e.timeout = timeout
	}
}

// NewEinoPDFLineExtractor 初始化 Eino PDF 文本行提取器
// 配置为按页分割，每页文本再按行切分，保持页面内的行顺序
func NewEinoPDFLineExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFLineExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true, // 按页返回，行顺序跟随页面顺序
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFLineExtractor{
		parser:  p,
		timeout: 30 * time.Second,
		logger:  log.New(os.Stderr, "[PDF解析器] ", log.LstdFlags),
	}

	// 应用选项
	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractFromFile 从PDF文件提取文本行
func (e *EinoPDFLineExtractor) ExtractFromFile(ctx context.Context, filePath string) ([]string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始处理PDF文件: %s", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err == nil {
		e.logger.Printf("PDF文件大小: %.2f MB", float64(fileInfo.Size())/1024/1024)
	}

	lines, metadata, err := e.ExtractLinesFromReader(ctx, file, filePath, 0)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("PDF处理失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return nil, nil, err
	}

	e.logger.Printf("PDF处理完成: 提取了 %d 行 (用时 %.2f秒)", len(lines), duration.Seconds())
	return lines, metadata, nil
}

// ExtractLinesFromReader 从 io.Reader 中提取文本行
func (e *EinoPDFLineExtractor) ExtractLinesFromReader(ctx context.Context, reader io.Reader, uri string, size int64) ([]string, map[string]interface{}, error) {
	startTime := time.Now()
	e.logger.Printf("开始从Reader提取PDF文本 (URI: %s)", uri)

	// 创建带超时的上下文
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	extraMeta := map[string]interface{}{
		"source_uri":      uri,
		"extraction_time": time.Now().Format(time.RFC3339),
	}

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(extraMeta),
	)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("从Reader提取PDF失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return nil, extraMeta, fmt.Errorf("eino PDF parser failed for URI %s: %w", uri, err)
	}

	if len(docs) == 0 {
		e.logger.Printf("PDF解析无结果 (用时 %.2f秒)", duration.Seconds())
		return nil, extraMeta, fmt.Errorf("eino PDF parser returned no documents for URI %s", uri)
	}

	// 逐页切行，丢弃空行
	var lines []string
	totalChars := 0
	for _, doc := range docs {
		totalChars += len(doc.Content)
		for _, raw := range strings.Split(doc.Content, "\n") {
			line := strings.TrimSpace(raw)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	metadata := make(map[string]interface{})
	if docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			metadata[k] = v
		}
	}
	for k, v := range extraMeta {
		metadata[k] = v
	}
	metadata["page_count"] = len(docs)
	metadata["line_count"] = len(lines)
	metadata["text_length"] = totalChars
	metadata["processing_duration_ms"] = duration.Milliseconds()

	e.logger.Printf("PDF提取完成: %d 页, %d 行 (用时 %.2f秒)", len(docs), len(lines), duration.Seconds())
	return lines, metadata, nil
}

// ExtractLinesFromBytes 从字节数组提取文本行
func (e *EinoPDFLineExtractor) ExtractLinesFromBytes(ctx context.Context, data []byte, uri string) ([]string, map[string]interface{}, error) {
	return e.ExtractLinesFromReader(ctx, bytes.NewReader(data), uri, int64(len(data)))
}
