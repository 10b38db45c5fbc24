// Package arxiv 学术文献检索：把任意文本转换成 arXiv 查询，返回最多几篇候选论文。
// 所有失败 (超时、网络错误、非 200、Feed 格式错误) 都降级为空结果，不向调用方返回错误。
package arxiv

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/logger"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
)

// 默认值与 arXiv API 的约束保持一致
const (
	DefaultBaseURL     = "http://export.arxiv.org/api/query"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxResults  = 3
	DefaultMaxQueryLen = 70
)

// atomNS Atom 命名空间，响应根元素必须是 {atomNS}feed
const atomNS = "http://www.w3.org/2005/Atom"

// maxFeedBytes 响应体读取上限
const maxFeedBytes = 4 << 20

// Client arXiv 检索客户端
type Client struct {
	baseURL     string
	maxResults  int
	maxQueryLen int
	client      *http.Client
}

// NewClient 根据配置创建客户端，零值字段使用默认值
func NewClient(cfg config.ArxivConfig) *Client {
	c := &Client{
		baseURL:     cfg.BaseURL,
		maxResults:  cfg.MaxResults,
		maxQueryLen: cfg.MaxQueryLen,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.maxResults <= 0 {
		c.maxResults = DefaultMaxResults
	}
	if c.maxQueryLen <= 0 {
		c.maxQueryLen = DefaultMaxQueryLen
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.client = &http.Client{Timeout: timeout}
	return c
}

// DeriveQuery 截取前 maxLen 个字符，再去掉 ".pdf" 并把 "_" 换成空格，
// 使文件名也能作为检索词。截断发生在替换之前。
func DeriveQuery(text string, maxLen int) string {
	if maxLen > 0 {
		if r := []rune(text); len(r) > maxLen {
			text = string(r[:maxLen])
		}
	}
	text = strings.ReplaceAll(text, ".pdf", "")
	return strings.ReplaceAll(text, "_", " ")
}

// Lookup 检索与 text 相关的论文，最多返回 maxResults 条；任何失败都返回空切片。
func (c *Client) Lookup(ctx context.Context, text string) []model.ArxivLink {
	query := DeriveQuery(text, c.maxQueryLen)
	if strings.TrimSpace(query) == "" {
		return []model.ArxivLink{}
	}

	links, err := c.fetch(ctx, query)
	if err != nil {
		logger.Log.Warnf("arXiv 检索失败 [%s]: %v", query, err)
		return []model.ArxivLink{}
	}
	logger.Log.Debugf("arXiv 检索 [%s] 返回 %d 条", query, len(links))
	return links
}

func (c *Client) fetch(ctx context.Context, query string) ([]model.ArxivLink, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("max_results", strconv.Itoa(c.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv api error (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if err := checkFeed(body); err != nil {
		return nil, err
	}

	feed, err := (&atom.Parser{}).Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed failed: %w", err)
	}

	links := make([]model.ArxivLink, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		// 没有 id 的条目无法给出链接
		if e.ID == "" {
			continue
		}
		links = append(links, model.ArxivLink{
			Title: strings.TrimSpace(e.Title),
			Link:  strings.TrimSpace(e.ID),
		})
		if len(links) == c.maxResults {
			break
		}
	}
	return links, nil
}

// checkFeed 用严格的 XML 解码器走一遍全部 token：文档必须格式良好、只有一个根元素，
// 且根元素是 Atom 命名空间下的 feed。gofeed 的解析器会容忍不闭合的标签。
func checkFeed(body []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(body))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed feed: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if roots > 0 {
					return errors.New("malformed feed: junk after document element")
				}
				if t.Name.Space != atomNS || t.Name.Local != "feed" {
					return fmt.Errorf("unexpected root element {%s}%s", t.Name.Space, t.Name.Local)
				}
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return errors.New("malformed feed: no root element")
	}
	return nil
}
