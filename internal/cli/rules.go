package cli

import (
	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the merge rules in evaluation order",
		Long: `List the merge rules of the configured rule table in evaluation order.

The optional tiers follow --absorb-symbols and --merge-compounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comp, err := loadComponents(cmd.Context())
			if err != nil {
				return err
			}
			return GetRenderer(cmd.Context()).Rules(comp.Table.Rules())
		},
	}
}
