package domain

// Reference 报告附带的引用 (网页或论文)
type Reference struct {
	Kind    string
	Label   string
	Title   string
	URL     string
	Content string
}

// Analysis 一次分析的结果，只存在于本次请求
type Analysis struct {
	RequestID  string
	Workflow   string
	Subject    string
	Status     string
	Report     string
	References []Reference
}
