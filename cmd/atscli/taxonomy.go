package main

import (
	"github.com/spf13/cobra"
)

func newTaxonomyCmd() *cobra.Command {
	var (
		tax     taxonomyFlags
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Print the skill taxonomy in effect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, source, err := tax.resolve(cmd.Context())
			if err != nil {
				return err
			}
			cmd.PrintErrf("taxonomy source: %s (%d skills)\n", source, len(t.Skills()))
			return writeJSON(cmd.OutOrStdout(), t.Data(), compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Print compact JSON")
	tax.register(cmd)
	return cmd
}
