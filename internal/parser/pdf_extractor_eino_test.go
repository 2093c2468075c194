package parser

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEinoPDFLineExtractor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFLineExtractor(ctx)
	require.NoError(t, err, "创建PDF提取器不应返回错误")
	require.NotNil(t, extractor, "创建的PDF提取器不应为nil")
	require.NotNil(t, extractor.parser, "PDF提取器内部的parser不应为nil")
	require.NotNil(t, extractor.logger, "PDF提取器应该有默认的logger")

	// 测试带自定义logger的创建
	customLogger := log.New(io.Discard, "[测试PDF提取器] ", log.LstdFlags)
	extractorWithCustomLogger, err := NewEinoPDFLineExtractor(ctx, WithEinoLogger(customLogger))
	require.NoError(t, err, "创建带自定义logger的PDF提取器不应返回错误")
	require.Equal(t, customLogger, extractorWithCustomLogger.logger, "应该使用提供的自定义logger")
}

func TestEinoPDFExtractorInvalidData(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFLineExtractor(ctx, WithEinoLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)

	_, _, err = extractor.ExtractLinesFromBytes(ctx, []byte("not a pdf document"), "broken.pdf")
	assert.Error(t, err, "非PDF数据应返回解析错误")
}

func TestNewLineExtractorForPath(t *testing.T) {
	ctx := context.Background()

	pdfExtractor, err := NewLineExtractorForPath(ctx, "resume.PDF")
	require.NoError(t, err, "PDF路径应能创建提取器")
	assert.IsType(t, &EinoPDFLineExtractor{}, pdfExtractor, "PDF后缀应使用PDF提取器")

	docxExtractor, err := NewLineExtractorForPath(ctx, "resume.docx")
	require.NoError(t, err)
	assert.IsType(t, &DocxLineExtractor{}, docxExtractor, "非PDF后缀应使用DOCX提取器")
}
