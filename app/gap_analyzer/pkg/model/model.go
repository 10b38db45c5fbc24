package model

// SearchResult 网页检索结果（Web Evidence Search 的输出）
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ArxivLink arXiv 论文链接
type ArxivLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ReferenceKind 引用来源类型
type ReferenceKind string

const (
	// ReferenceWeb 来自网页检索
	ReferenceWeb ReferenceKind = "web"
	// ReferencePaper 来自学术检索
	ReferencePaper ReferenceKind = "paper"
)

// Reference 聚合结果中的单条引用，网页结果与论文共用一个结构
type Reference struct {
	Kind    ReferenceKind `json:"kind"`
	Title   string        `json:"title"`
	URL     string        `json:"url"`
	Content string        `json:"content,omitempty"`
}

// Label 展示用标题，例如 "Web: xxx" / "Paper: xxx"
func (r Reference) Label() string {
	switch r.Kind {
	case ReferenceWeb:
		return "Web: " + r.Title
	case ReferencePaper:
		return "Paper: " + r.Title
	default:
		return r.Title
	}
}

// WebReferences 将网页结果转换为引用，保持原有顺序
func WebReferences(results []SearchResult) []Reference {
	refs := make([]Reference, 0, len(results))
	for _, r := range results {
		refs = append(refs, Reference{
			Kind:    ReferenceWeb,
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}
	return refs
}

// PaperReferences 将 arXiv 链接转换为引用，保持原有顺序
func PaperReferences(links []ArxivLink) []Reference {
	refs := make([]Reference, 0, len(links))
	for _, l := range links {
		refs = append(refs, Reference{
			Kind:  ReferencePaper,
			Title: l.Title,
			URL:   l.Link,
		})
	}
	return refs
}

// AggregatedResult 一次用户操作的聚合结果：报告正文 + 有序引用列表
type AggregatedResult struct {
	Report     string      `json:"report"`
	References []Reference `json:"references"`
}
