package search

import "context"

// Searcher 定义通用的网页搜索接口 (Web Evidence Search)
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// 搜索深度
const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"
)

// Request 通用搜索请求
type Request struct {
	Query      string
	Depth      string // "basic" or "advanced"
	MaxResults int
}

// Response 通用搜索响应，Results 保持服务端返回的顺序
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title   string
	URL     string
	Content string
}
