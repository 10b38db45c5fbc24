// Package synth 调用 OpenAI 兼容的对话模型生成分析报告 (Analysis Synthesizer)。
// 每次只发一轮 system + user 消息，不做流式、不做重试。
package synth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
)

// Prompt 固定的 system 角色提示词
type Prompt string

const (
	// PromptGapAnalysis 构想侦察：分析研究空白与新颖性
	PromptGapAnalysis Prompt = "Analyze research gaps and novelty."
	// PromptMilestones 文档分析：提取技术里程碑与新颖性
	PromptMilestones Prompt = "Extract technical milestones and novelty."
)

// ErrEmptyCompletion 模型返回了空消息
var ErrEmptyCompletion = errors.New("empty completion")

// Synthesizer 报告生成器
type Synthesizer struct {
	cm model.BaseChatModel
}

// New 根据配置创建基于 eino openai 组件的生成器。缺少 API Key 时返回 *config.MissingCredentialError。
func New(ctx context.Context, cfg config.LLMConfig) (*Synthesizer, error) {
	if cfg.APIKey == "" {
		return nil, &config.MissingCredentialError{Name: config.EnvLLMAPIKey}
	}

	headers := map[string]string{}
	if cfg.Referer != "" {
		headers["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		headers["X-Title"] = cfg.Title
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: &http.Client{Transport: &headerTransport{headers: headers}},
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewWithModel(chatModel), nil
}

// NewWithModel 使用现成的 ChatModel 创建生成器
func NewWithModel(cm model.BaseChatModel) *Synthesizer {
	return &Synthesizer{cm: cm}
}

// Synthesize 发送一轮对话并返回第一条回复的全文
func (s *Synthesizer) Synthesize(ctx context.Context, prompt Prompt, userMessage string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: string(prompt)},
		{Role: schema.User, Content: userMessage},
	}

	resp, err := s.cm.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}
	return resp.Content, nil
}

// IdeaMessage 构想侦察的 user 消息
func IdeaMessage(idea, evidence string) string {
	return fmt.Sprintf("Idea: %s\n\nContext:\n%s", idea, evidence)
}

// DocumentMessage 文档分析的 user 消息，只包含文件名或 URL
func DocumentMessage(name string) string {
	return "Analyze: " + name
}

// FlattenContext 把网页检索结果拼成 "Source: <url>\nContent: <content>"，按行连接
func FlattenContext(results []dm.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Source: %s\nContent: %s", r.URL, r.Content))
	}
	return strings.Join(parts, "\n")
}

// headerTransport 给每个请求附加固定的请求头 (OpenRouter 归属信息)
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if len(t.headers) == 0 {
		return base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return base.RoundTrip(req)
}
