package cli

import (
	"github.com/spf13/cobra"

	dmarcsvc "github.com/mailposture/mailposture/internal/services/dmarc"
)

func newDMARCCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "dmarc [domain...]",
		Short:   "Audit DMARC policy records",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := dmarcsvc.NewService(d.resolver, d.logger)
			return runService(cmd, d, svc, args)
		},
	}
}
