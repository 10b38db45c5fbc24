package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/arxiv"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/logger"
	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/search/factory"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/synth"
)

// Synthesizer 报告生成 (见 synth 包)
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt synth.Prompt, userMessage string) (string, error)
}

// ReferenceLookup 学术检索，失败时返回空切片 (见 arxiv 包)
type ReferenceLookup interface {
	Lookup(ctx context.Context, text string) []dm.ArxivLink
}

// Engine 核心处理引擎：串行执行 检索 -> 生成 -> 学术检索，并合并结果
type Engine struct {
	searcher    search.Searcher
	synthesizer Synthesizer
	lookup      ReferenceLookup

	searchDepth      string
	maxResults       int
	enrichMinContent int
	enrichTimeout    time.Duration
	fetchContent     ContentFetcher
}

// Option 引擎可选项
type Option func(*Engine)

// WithSearchDepth 网页检索深度，默认 advanced
func WithSearchDepth(depth string) Option {
	return func(e *Engine) {
		if depth != "" {
			e.searchDepth = depth
		}
	}
}

// WithMaxResults 网页检索条数，默认 5
func WithMaxResults(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithEnrichment 网页摘要短于 minContent 时抓取正文替换摘要；minContent <= 0 关闭。
// fetch 为 nil 时使用 readability 抓取。
func WithEnrichment(minContent int, fetch ContentFetcher) Option {
	return func(e *Engine) {
		e.enrichMinContent = minContent
		if fetch != nil {
			e.fetchContent = fetch
		}
	}
}

// WithEnrichTimeout 单个网页抓取的超时上限，默认 10 秒
func WithEnrichTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.enrichTimeout = d
		}
	}
}

// New 使用显式注入的依赖创建引擎
func New(searcher search.Searcher, synthesizer Synthesizer, lookup ReferenceLookup, opts ...Option) *Engine {
	e := &Engine{
		searcher:      searcher,
		synthesizer:   synthesizer,
		lookup:        lookup,
		searchDepth:   search.DepthAdvanced,
		maxResults:    5,
		enrichTimeout: defaultEnrichTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	if e.fetchContent == nil {
		e.fetchContent = readabilityFetcher(e.enrichTimeout)
	}
	return e
}

// NewEngine 根据配置创建引擎实例。缺少密钥时返回 *config.MissingCredentialError。
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	synthesizer, err := synth.New(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	return New(searcher, synthesizer, arxiv.NewClient(cfg.Arxiv),
		WithSearchDepth(cfg.Search.Tavily.SearchDepth),
		WithMaxResults(cfg.Search.Tavily.MaxResults),
		WithEnrichment(cfg.Search.EnrichMinContent, nil),
		WithEnrichTimeout(cfg.Search.EnrichTimeout),
	), nil
}

// AnalyzeDocument 文档分析流程：只把文件名或 URL 交给模型，不读取文件内容，
// 再用同一字符串做学术检索。返回的 error 仅表示输入校验失败。
func (e *Engine) AnalyzeDocument(ctx context.Context, src DocumentSource) (Outcome, error) {
	name := src.Name
	if strings.TrimSpace(name) == "" {
		return Outcome{}, &ValidationError{Workflow: WorkflowDocument, Message: MsgProvideDocument}
	}

	log := logger.Log.WithFields(logrus.Fields{"workflow": WorkflowDocument, "source": src.Kind})
	log.Infof("开始分析文档: %s", name)

	out := Outcome{Workflow: WorkflowDocument, Subject: name}

	report, err := e.synthesizer.Synthesize(ctx, synth.PromptMilestones, synth.DocumentMessage(name))
	if err != nil {
		log.Warnf("生成报告失败: %v", err)
		out.Err = &FetchError{Stage: StageSynthesize, Err: err}
		return out, nil
	}
	out.Report = report

	links := e.lookup.Lookup(ctx, name)
	out.References = dm.PaperReferences(links)

	log.Infof("文档分析完成，学术引用 %d 条", len(links))
	return out, nil
}

// ScoutIdea 构想侦察流程：网页检索 -> 带上下文生成报告 -> 用原始构想做学术检索。
// 引用顺序为网页结果在前、论文在后，各组内保持服务端顺序。
func (e *Engine) ScoutIdea(ctx context.Context, idea string) (Outcome, error) {
	if strings.TrimSpace(idea) == "" {
		return Outcome{}, &ValidationError{Workflow: WorkflowIdea, Message: MsgEnterIdea}
	}

	log := logger.Log.WithField("workflow", WorkflowIdea)
	log.Infof("开始侦察构想 (%d 字符)", len(idea))

	out := Outcome{Workflow: WorkflowIdea, Subject: idea}

	// 1. 网页检索
	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:      idea,
		Depth:      e.searchDepth,
		MaxResults: e.maxResults,
	})
	if err != nil {
		log.Warnf("网页检索失败: %v", err)
		out.Err = &FetchError{Stage: StageSearch, Err: err}
		return out, nil
	}
	log.Debugf("网页检索返回 %d 条", len(resp.Results))

	results := make([]dm.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, dm.SearchResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	e.enrich(ctx, results)

	// 2. 生成报告
	report, err := e.synthesizer.Synthesize(ctx, synth.PromptGapAnalysis,
		synth.IdeaMessage(idea, synth.FlattenContext(results)))
	if err != nil {
		log.Warnf("生成报告失败: %v", err)
		out.Err = &FetchError{Stage: StageSynthesize, Err: err}
		return out, nil
	}
	out.Report = report

	// 3. 学术检索，使用原始构想文本
	links := e.lookup.Lookup(ctx, idea)

	refs := dm.WebReferences(results)
	out.References = append(refs, dm.PaperReferences(links)...)

	log.Infof("构想侦察完成，网页 %d 条，论文 %d 条", len(results), len(links))
	return out, nil
}
