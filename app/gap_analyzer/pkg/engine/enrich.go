package engine

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/logger"
	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
)

// maxEnrichedContent 抓取正文的截断长度 (字符)
const maxEnrichedContent = 5000

// defaultEnrichTimeout 单个网页抓取的默认超时
const defaultEnrichTimeout = 10 * time.Second

// ContentFetcher 抓取网页正文
type ContentFetcher func(ctx context.Context, url string) (string, error)

// enrich 对摘要过短的结果抓取网页正文，原地替换 Content。
// 抓取失败或正文不比摘要长时保留原摘要；ctx 结束后不再发起新的抓取。
func (e *Engine) enrich(ctx context.Context, results []dm.SearchResult) {
	if e.enrichMinContent <= 0 || e.fetchContent == nil {
		return
	}
	for i := range results {
		if ctx.Err() != nil {
			logger.Log.Debugf("停止抓取正文: %v", ctx.Err())
			return
		}
		item := &results[i]
		if len([]rune(item.Content)) >= e.enrichMinContent || item.URL == "" {
			continue
		}
		fetched, err := e.fetchContent(ctx, item.URL)
		if err != nil {
			logger.Log.Debugf("抓取正文失败 [%s]: %v", item.URL, err)
			continue
		}
		fetched = strings.TrimSpace(fetched)
		if r := []rune(fetched); len(r) > maxEnrichedContent {
			fetched = string(r[:maxEnrichedContent])
		}
		if len(fetched) > len(item.Content) {
			item.Content = fetched
		}
	}
}

// readabilityFetcher 用 readability 抓取并清洗正文，单页超时为 timeout，同时受 ctx 约束
func readabilityFetcher(timeout time.Duration) ContentFetcher {
	return func(ctx context.Context, url string) (string, error) {
		article, err := readability.FromURL(url, timeout, func(r *http.Request) {
			if r != nil {
				*r = *r.WithContext(ctx)
			}
		})
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}
