package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/conf"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
	gaLogger "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/logger"
)

// AnalyzerConfig 将 internal/conf.Analyzer 转换为 pkg/config.Config，
// 未配置的字段保持默认值，密钥最后由环境变量覆盖
func AnalyzerConfig(c *conf.Analyzer) *config.Config {
	cfg := config.Default()
	if c == nil {
		cfg.ApplyEnv()
		return cfg
	}

	if l := c.Llm; l != nil {
		setString(&cfg.LLM.BaseURL, l.BaseUrl)
		setString(&cfg.LLM.APIKey, l.ApiKey)
		setString(&cfg.LLM.Model, l.Model)
		setString(&cfg.LLM.Referer, l.Referer)
		setString(&cfg.LLM.Title, l.Title)
	}
	if s := c.Search; s != nil {
		setString(&cfg.Search.Provider, s.Provider)
		cfg.Search.EnrichMinContent = int(s.EnrichMinContent)
		setDuration(&cfg.Search.EnrichTimeout, s.EnrichTimeout)
		if t := s.Tavily; t != nil {
			setString(&cfg.Search.Tavily.APIKey, t.ApiKey)
			setString(&cfg.Search.Tavily.BaseURL, t.BaseUrl)
			setString(&cfg.Search.Tavily.SearchDepth, t.SearchDepth)
			setInt(&cfg.Search.Tavily.MaxResults, t.MaxResults)
			setDuration(&cfg.Search.Tavily.Timeout, t.Timeout)
		}
		if x := s.Searxng; x != nil {
			setString(&cfg.Search.SearXNG.BaseURL, x.BaseUrl)
			setInt(&cfg.Search.SearXNG.Timeout, x.Timeout)
		}
	}
	if a := c.Arxiv; a != nil {
		setString(&cfg.Arxiv.BaseURL, a.BaseUrl)
		setDuration(&cfg.Arxiv.Timeout, a.Timeout)
		setInt(&cfg.Arxiv.MaxResults, a.MaxResults)
		setInt(&cfg.Arxiv.MaxQueryLen, a.MaxQueryLen)
	}
	if l := c.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		cfg.Log.File = l.File
	}

	cfg.ApplyEnv()
	return cfg
}

// NewAnalyzerEngine 初始化分析引擎；缺少密钥时启动失败
func NewAnalyzerEngine(c *conf.Analyzer, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := AnalyzerConfig(c)
	helper := log.NewHelper(logger)

	if err := gaLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init analyzer logger: %v", err)
		_ = gaLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up analyzer engine")
	}
	return eng, cleanup, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int32) {
	if v > 0 {
		*dst = int(v)
	}
}

func setDuration(dst *time.Duration, v string) {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		*dst = d
	}
}
