package cli

import (
	"github.com/spf13/cobra"

	caasvc "github.com/mailposture/mailposture/internal/services/caa"
)

func newCAACmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "caa [domain...]",
		Short:   "Audit CAA certificate-issuance records",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := caasvc.NewService(d.resolver, d.logger)
			return runService(cmd, d, svc, args)
		},
	}
}
