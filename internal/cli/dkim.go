package cli

import (
	"github.com/spf13/cobra"

	dkimsvc "github.com/mailposture/mailposture/internal/services/dkim"
)

func newDKIMCmd(d *deps) *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:     "dkim [domain...]",
		Short:   "Audit DKIM public keys for a selector",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := dkimsvc.NewService(d.resolver, d.logger, selector)
			return runService(cmd, d, svc, args)
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "s", dkimsvc.DefaultSelector, "DKIM selector to query")
	return cmd
}
