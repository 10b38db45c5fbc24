package engine

import (
	"errors"
	"fmt"

	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
)

// Workflow 工作流类型
type Workflow string

const (
	WorkflowDocument Workflow = "document"
	WorkflowIdea     Workflow = "idea"
)

// SourceKind 文档来源
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

// DocumentSource 待分析的文档。只使用 Name (文件名或 URL)，不读取内容。
type DocumentSource struct {
	Kind SourceKind
	Name string
}

// 用户可见的校验提示
const (
	MsgProvideDocument = "Provide a document."
	MsgEnterIdea       = "Enter an idea."
)

// ErrEmptyInput 输入为空，未发起任何外部调用
var ErrEmptyInput = errors.New("empty input")

// ValidationError 输入校验失败
type ValidationError struct {
	Workflow Workflow
	Message  string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrEmptyInput }

// 失败阶段
const (
	StageSearch     = "search"
	StageSynthesize = "synthesize"
)

// FetchError 外部服务调用失败
type FetchError struct {
	Stage string
	Err   error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// ErrorPrefix 失败时报告正文的前缀
const ErrorPrefix = "⚠️ Error: "

// Status 结果状态
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Outcome 单次工作流的结果
type Outcome struct {
	Workflow   Workflow
	Subject    string
	Report     string
	References []dm.Reference
	Err        error
}

// Status 区分成功、成功但无引用、失败
func (o Outcome) Status() Status {
	switch {
	case o.Err != nil:
		return StatusFailed
	case len(o.References) == 0:
		return StatusEmpty
	default:
		return StatusOK
	}
}

// Render 返回展示用的报告正文，失败时为带警告前缀的错误信息
func (o Outcome) Render() string {
	if o.Err != nil {
		return ErrorPrefix + o.Err.Error()
	}
	return o.Report
}

// Result 转换为 (报告, 引用) 结果；失败时引用为空
func (o Outcome) Result() dm.AggregatedResult {
	refs := o.References
	if o.Err != nil || refs == nil {
		refs = []dm.Reference{}
	}
	return dm.AggregatedResult{Report: o.Render(), References: refs}
}
