package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alyssa-glean/detekt/internal/config"
)

const starterConfig = `# detekt configuration layer. Later layers override earlier ones;
# excludes accumulate across layers.
rules:
  long-method:
    parameters:
      maxLines: 60
  magic-number:
    enabled: true
  todo-comment:
    enabled: false
excludes:
  - "**/*_test.go"
  - "**/testdata/**"
failFast: false
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			target := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists", target)
			}
			if err := os.WriteFile(target, []byte(starterConfig), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
}
