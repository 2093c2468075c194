package parser

import (
	"context"
	"io"
	"strings"
)

// LineExtractor 文档文本行提取器接口
// PDF和DOCX提取器都实现此接口
type LineExtractor interface {
	// ExtractFromFile 从文档文件提取文本行和元数据
	ExtractFromFile(ctx context.Context, filePath string) ([]string, map[string]interface{}, error)

	// ExtractLinesFromReader 从io.Reader提取文本行和元数据
	ExtractLinesFromReader(ctx context.Context, reader io.Reader, uri string, size int64) ([]string, map[string]interface{}, error)

	// ExtractLinesFromBytes 从字节数组提取文本行和元数据
	ExtractLinesFromBytes(ctx context.Context, data []byte, uri string) ([]string, map[string]interface{}, error)
}

// NewLineExtractorForPath 根据文件后缀选择提取器
// .pdf走PDF解析，其余一律按DOCX处理
func NewLineExtractorForPath(ctx context.Context, path string) (LineExtractor, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewEinoPDFLineExtractor(ctx)
	}
	return NewDocxLineExtractor(), nil
}

var (
	_ LineExtractor = (*EinoPDFLineExtractor)(nil)
	_ LineExtractor = (*DocxLineExtractor)(nil)
)
