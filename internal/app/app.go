package app

import (
	"github.com/spf13/cobra"

	"github.com/alyssa-glean/detekt/internal/cli"
	"github.com/alyssa-glean/detekt/internal/logging"
)

func BuildRoot() *cobra.Command {
	var logLevel, logFormat string
	root := &cobra.Command{
		Use:   "detekt",
		Short: "Static analysis for code smells",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logFormat, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("DETEKT_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", envOr("DETEKT_LOG_FORMAT", "text"), "Log format: text|json")
	cli.AddCommands(root)
	return root
}
