package parser

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParagraphLines 测试document.xml内容的段落切分与标签清理
func TestParagraphLines(t *testing.T) {
	content := `<w:p><w:r><w:t>John Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Skills: Python &amp; Go</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>&quot;Quoted&quot; &lt;tag&gt;</w:t></w:r></w:p>`

	lines := paragraphLines(content)

	expected := []string{
		"John Doe",
		"Skills: Python & Go",
		`"Quoted" <tag>`,
	}
	assert.Equal(t, expected, lines, "段落切分结果与预期不符")
}

// TestParagraphLinesEmpty 测试空内容
func TestParagraphLinesEmpty(t *testing.T) {
	assert.Empty(t, paragraphLines(""), "空内容不应产生文本行")
	assert.Empty(t, paragraphLines("<w:p></w:p>"), "空段落不应产生文本行")
}

// TestUnescapeXML 测试XML实体还原
func TestUnescapeXML(t *testing.T) {
	assert.Equal(t, `A & B < C > "D" 'E'`, unescapeXML("A &amp; B &lt; C &gt; &quot;D&quot; &apos;E&apos;"), "XML实体还原与预期不符")
}

// TestDocxExtractorInvalidData 验证非DOCX数据返回错误
func TestDocxExtractorInvalidData(t *testing.T) {
	extractor := NewDocxLineExtractor(WithDocxLogger(log.New(io.Discard, "", 0)))

	_, _, err := extractor.ExtractLinesFromBytes(context.Background(), []byte("not a zip archive"), "broken.docx")
	assert.Error(t, err, "非DOCX数据应返回解析错误")
}
