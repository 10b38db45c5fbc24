// Package searxng 自建 SearXNG 实例作为网页检索来源，供不使用 Tavily 的部署选择。
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search"
)

// 检索分类：advanced 额外查询学术类引擎 (arxiv、google scholar、semantic scholar 等)
const (
	categoriesBasic    = "general"
	categoriesAdvanced = "general,science"
)

const userAgent = "Vanguard-Research-AI/1.0"

// Client SearXNG 客户端
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建客户端，timeout 单位为秒，0 表示 30 秒
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: t},
	}
}

var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Search 执行检索。SearXNG 聚合多个引擎，同一 URL 可能重复出现，这里按首次出现去重；
// 没有 URL 的结果无法作为引用，直接丢弃。SearXNG 没有结果数量参数，在客户端截断到 MaxResults。
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/search"

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", categories(req.Depth))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	seen := make(map[string]struct{}, len(sr.Results))
	results := make([]search.Result, 0, len(sr.Results))
	for _, r := range sr.Results {
		if r.URL == "" {
			continue
		}
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		results = append(results, search.Result{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Content: strings.TrimSpace(r.Content),
		})
		if req.MaxResults > 0 && len(results) == req.MaxResults {
			break
		}
	}

	return &search.Response{Results: results}, nil
}

func categories(depth string) string {
	if depth == search.DepthAdvanced {
		return categoriesAdvanced
	}
	return categoriesBasic
}
