package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/nguyenthenguyen/docx"
)

// DocxLineExtractor 从DOCX文档提取段落文本行
type DocxLineExtractor struct {
	logger *log.Logger
}

// DocxOption DOCX提取器的配置选项
type DocxOption func(*DocxLineExtractor)

// WithDocxLogger 配置自定义日志记录器
func WithDocxLogger(logger *log.Logger) DocxOption {
	return func(d *DocxLineExtractor) {
		d.logger = logger
	}
}

// NewDocxLineExtractor 初始化DOCX文本行提取器
func NewDocxLineExtractor(options ...DocxOption) *DocxLineExtractor {
	extractor := &DocxLineExtractor{
		logger: log.New(os.Stderr, "[DOCX解析器] ", log.LstdFlags),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

var (
	// document.xml 中的段落边界和标签
	docxParagraphRe = regexp.MustCompile(`(?s)</w:p>`)
	docxTagRe       = regexp.MustCompile(`<[^>]*>`)
)

// ExtractFromFile 从DOCX文件提取文本行
func (d *DocxLineExtractor) ExtractFromFile(ctx context.Context, filePath string) ([]string, map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read DOCX file %s: %w", filePath, err)
	}
	return d.ExtractLinesFromBytes(ctx, data, filePath)
}

// ExtractLinesFromReader 从 io.Reader 中提取文本行
// DOCX是zip容器，解析前需要完整读入内存
func (d *DocxLineExtractor) ExtractLinesFromReader(ctx context.Context, reader io.Reader, uri string, size int64) ([]string, map[string]interface{}, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, nil, fmt.Errorf("failed to buffer DOCX content for %s: %w", uri, err)
	}
	return d.ExtractLinesFromBytes(ctx, buf.Bytes(), uri)
}

// ExtractLinesFromBytes 从字节数组提取文本行
func (d *DocxLineExtractor) ExtractLinesFromBytes(ctx context.Context, data []byte, uri string) ([]string, map[string]interface{}, error) {
	startTime := time.Now()
	d.logger.Printf("开始处理DOCX (URI: %s, %d 字节)", uri, len(data))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		d.logger.Printf("DOCX解析失败: %s", err)
		return nil, nil, fmt.Errorf("failed to parse DOCX for URI %s: %w", uri, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	lines := paragraphLines(content)

	duration := time.Since(startTime)
	metadata := map[string]interface{}{
		"source_uri":             uri,
		"extraction_time":        time.Now().Format(time.RFC3339),
		"line_count":             len(lines),
		"text_length":            len(content),
		"processing_duration_ms": duration.Milliseconds(),
	}

	d.logger.Printf("DOCX提取完成: %d 行 (用时 %.2f秒)", len(lines), duration.Seconds())
	return lines, metadata, nil
}

// paragraphLines 以段落为边界切分document.xml内容并去除标签
func paragraphLines(content string) []string {
	var lines []string
	for _, para := range docxParagraphRe.Split(content, -1) {
		text := docxTagRe.ReplaceAllString(para, "")
		text = unescapeXML(text)
		text = strings.TrimSpace(text)
		if text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

func unescapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
	return replacer.Replace(s)
}
