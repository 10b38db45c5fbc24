// Package main 是 gap_analyzer 命令行入口：文档分析 (document) 与构想侦察 (scout)。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/config"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/logger"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/render"
)

// version 构建时通过 ldflags 注入
var version = "dev"

// analyzer 命令需要的引擎能力
type analyzer interface {
	AnalyzeDocument(ctx context.Context, src engine.DocumentSource) (engine.Outcome, error)
	ScoutIdea(ctx context.Context, idea string) (engine.Outcome, error)
}

// newAnalyzer 测试中替换
var newAnalyzer = func(ctx context.Context, cfg *config.Config) (analyzer, error) {
	return engine.NewEngine(ctx, cfg)
}

// errAnalysisFailed 外部服务失败，报告已输出
var errAnalysisFailed = errors.New("analysis failed")

var (
	cfgFile    string
	jsonOutput bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gap_analyzer",
	Short: "Research gap analysis for papers and ideas",
	Long: `gap_analyzer 把网页检索、LLM 报告生成和 arXiv 学术检索串成两个工作流：

  document  只根据文件名或 URL 生成技术审计报告，并附上相关论文
  scout     针对一个研究构想检索网页证据，生成研究空白分析，并附上来源与论文

需要环境变量 OPENROUTER_API_KEY 和 TAVILY_API_KEY (也可写在 .env 中)。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("无法加载配置文件: %w", err)
		}
		if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
			return fmt.Errorf("无法初始化日志: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
}

// run 构建引擎并执行一次工作流，结果写到 w
func run(cmd *cobra.Command, fn func(ctx context.Context, a analyzer) (engine.Outcome, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	out, err := fn(ctx, a)
	if err != nil {
		return err
	}

	if err := write(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if out.Status() == engine.StatusFailed {
		return errAnalysisFailed
	}
	return nil
}

func write(w io.Writer, out engine.Outcome) error {
	if !jsonOutput {
		return render.Outcome(w, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(struct {
		Workflow engine.Workflow `json:"workflow"`
		Status   engine.Status   `json:"status"`
		Subject  string          `json:"subject"`
		Result   any             `json:"result"`
	}{out.Workflow, out.Status(), out.Subject, out.Result()})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
