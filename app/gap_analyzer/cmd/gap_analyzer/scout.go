package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
)

var scoutCmd = &cobra.Command{
	Use:   "scout <idea...>",
	Short: "Research gap analysis for an idea",
	Long: `scout 用构想原文检索网页证据，结合证据生成研究空白分析，
再用构想原文检索 arXiv。多个参数以空格连接。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		idea := strings.Join(args, " ")
		return run(cmd, func(ctx context.Context, a analyzer) (engine.Outcome, error) {
			return a.ScoutIdea(ctx, idea)
		})
	},
}

func init() {
	rootCmd.AddCommand(scoutCmd)
}
