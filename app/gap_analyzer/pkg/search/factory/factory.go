package factory

import (
	"fmt"
	"net/http"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/searxng"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例，未指定 provider 时默认使用 tavily
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		provider = "tavily"
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, &config.MissingCredentialError{Name: config.EnvTavilyAPIKey}
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey,
			tavily.WithBaseURL(cfg.Search.Tavily.BaseURL),
			tavily.WithHTTPClient(&http.Client{Timeout: cfg.Search.Tavily.Timeout}),
		), nil

	case "searxng":
		baseURL := cfg.Search.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
