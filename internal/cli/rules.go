package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alyssa-glean/detekt/internal/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := rules.NewRegistry()
			registry.RegisterBuiltin()
			registry.Seal()
			w := cmd.OutOrStdout()
			for _, r := range registry.All() {
				state := "off"
				if r.DefaultEnabled {
					state = "on"
				}
				extra := ""
				if r.RequiresContext {
					extra = " (needs semantic context)"
				}
				fmt.Fprintf(w, "%-24s %-8s %-4s %s%s\n", r.ID, r.Severity, state, r.Title, extra)
			}
			return nil
		},
	}
}
