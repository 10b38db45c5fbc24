package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gap_analyzer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gap_analyzer %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
