package cli

import (
	"github.com/spf13/cobra"

	spfsvc "github.com/mailposture/mailposture/internal/services/spf"
)

func newSPFCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "spf [domain...]",
		Short:   "Audit SPF records (lookup count, all-qualifier)",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := spfsvc.NewService(d.resolver, d.logger)
			return runService(cmd, d, svc, args)
		},
	}
}
