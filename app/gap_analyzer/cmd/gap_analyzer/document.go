package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
)

var (
	docFile string
	docURL  string
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Technical audit of a paper, by file name or URL",
	Long: `document 根据文件名或 URL 生成技术里程碑与新颖性报告，
再用同一字符串检索 arXiv。文件内容不会被读取或上传。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := documentSource(docFile, docURL)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, a analyzer) (engine.Outcome, error) {
			return a.AnalyzeDocument(ctx, src)
		})
	},
}

func init() {
	documentCmd.Flags().StringVarP(&docFile, "file", "f", "", "local PDF, only its base name is sent")
	documentCmd.Flags().StringVarP(&docURL, "url", "u", "", "document URL")
	documentCmd.MarkFlagsMutuallyExclusive("file", "url")

	rootCmd.AddCommand(documentCmd)
}

// documentSource 选择文档来源；文件只检查存在性，取其文件名
func documentSource(file, url string) (engine.DocumentSource, error) {
	switch {
	case file != "":
		info, err := os.Stat(file)
		if err != nil {
			return engine.DocumentSource{}, fmt.Errorf("无法访问文件: %w", err)
		}
		if info.IsDir() {
			return engine.DocumentSource{}, errors.New("--file 需要文件而不是目录")
		}
		return engine.DocumentSource{Kind: engine.SourceFile, Name: filepath.Base(file)}, nil
	case url != "":
		return engine.DocumentSource{Kind: engine.SourceURL, Name: url}, nil
	default:
		// 交给引擎返回统一的校验错误
		return engine.DocumentSource{Kind: engine.SourceFile}, nil
	}
}
