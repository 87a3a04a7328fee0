package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/WomB0ComB0/leetcode/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and request dumps.")
}

var rootCmd = &cobra.Command{
	Use:   "leetdaily",
	Short: "leetdaily scaffolds per-language solution stubs for leetcode's daily challenge.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
