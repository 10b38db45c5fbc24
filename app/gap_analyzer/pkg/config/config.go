package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量中的密钥名
const (
	EnvLLMAPIKey    = "OPENROUTER_API_KEY"
	EnvTavilyAPIKey = "TAVILY_API_KEY"
)

// ErrMissingCredential 缺少必需的 API 密钥
var ErrMissingCredential = errors.New("missing credential")

// MissingCredentialError 指明缺少的是哪个密钥
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: %s is not set", e.Name)
}

// Is 让 errors.Is(err, ErrMissingCredential) 成立
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// Config 项目配置结构体
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Search SearchConfig `yaml:"search"`
	Arxiv  ArxivConfig  `yaml:"arxiv"`
	Log    LogConfig    `yaml:"log"`
}

// LLMConfig LLM 相关配置 (OpenAI 兼容协议，默认 OpenRouter)
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Referer string `yaml:"referer"` // OpenRouter HTTP-Referer
	Title   string `yaml:"title"`   // OpenRouter X-Title
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
	// EnrichMinContent 网页摘要短于该长度时抓取正文补全，0 表示关闭
	EnrichMinContent int `yaml:"enrich_min_content"`
	// EnrichTimeout 单个网页抓取的超时上限
	EnrichTimeout time.Duration `yaml:"enrich_timeout"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	SearchDepth string        `yaml:"search_depth"`
	MaxResults  int           `yaml:"max_results"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// ArxivConfig 学术检索配置
type ArxivConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxResults  int           `yaml:"max_results"`
	MaxQueryLen int           `yaml:"max_query_len"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回默认配置：OpenRouter + Tavily advanced + arXiv
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "google/gemini-2.0-flash-001",
			Referer: "http://localhost:8501",
			Title:   "Vanguard AI Research Suite",
		},
		Search: SearchConfig{
			Provider: "tavily",
			Tavily: TavilyConfig{
				SearchDepth: "advanced",
				MaxResults:  5,
				Timeout:     30 * time.Second,
			},
			EnrichTimeout: 10 * time.Second,
		},
		Arxiv: ArxivConfig{
			BaseURL:     "http://export.arxiv.org/api/query",
			Timeout:     10 * time.Second,
			MaxResults:  3,
			MaxQueryLen: 70,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig 从指定路径加载配置；path 为空或文件不存在时使用默认值。
// 之后再用环境变量 (含 .env) 覆盖密钥。
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	// .env 不存在不是错误
	_ = godotenv.Load()
	cfg.ApplyEnv()

	return cfg, nil
}

// ApplyEnv 用环境变量覆盖密钥
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvTavilyAPIKey); v != "" {
		c.Search.Tavily.APIKey = v
	}
}

// Validate 检查启动必需的密钥
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return &MissingCredentialError{Name: EnvLLMAPIKey}
	}
	provider := c.Search.Provider
	if provider == "" || provider == "tavily" {
		if c.Search.Tavily.APIKey == "" {
			return &MissingCredentialError{Name: EnvTavilyAPIKey}
		}
	}
	return nil
}
