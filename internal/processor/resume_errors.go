package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrDocumentUnreadable = errors.New("文档无法读取")
	ErrUnsupportedFormat  = errors.New("不支持的文档格式")
	ErrParsingFailed      = errors.New("简历结构化失败")
	ErrExternalService    = errors.New("外部服务调用失败")
	ErrScoringFault       = errors.New("评分计算失败")
)

// PipelineError 包含详细错误信息的自定义错误
type PipelineError struct {
	Stage   string
	Op      string
	BaseErr error
	Detail  string
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (阶段:%s, 操作:%s): %s", e.BaseErr, e.Stage, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (阶段:%s, 操作:%s)", e.BaseErr, e.Stage, e.Op)
}

func (e *PipelineError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDocumentError(op, detail string) error {
	return &PipelineError{
		Stage:   "extract",
		Op:      op,
		BaseErr: ErrDocumentUnreadable,
		Detail:  detail,
	}
}

func NewUnsupportedFormatError(op, detail string) error {
	return &PipelineError{
		Stage:   "extract",
		Op:      op,
		BaseErr: ErrUnsupportedFormat,
		Detail:  detail,
	}
}

func NewParsingError(op, detail string) error {
	return &PipelineError{
		Stage:   "structure",
		Op:      op,
		BaseErr: ErrParsingFailed,
		Detail:  detail,
	}
}

func NewExternalServiceError(op, detail string) error {
	return &PipelineError{
		Stage:   "keywords",
		Op:      op,
		BaseErr: ErrExternalService,
		Detail:  detail,
	}
}

func NewScoringError(op, detail string) error {
	return &PipelineError{
		Stage:   "score",
		Op:      op,
		BaseErr: ErrScoringFault,
		Detail:  detail,
	}
}
