package cli

import (
	"github.com/spf13/cobra"

	ptrsvc "github.com/mailposture/mailposture/internal/services/ptr"
)

func newPTRCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "ptr [ip...]",
		Short:   "Resolve the reverse-DNS hostname of an IP address",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := ptrsvc.NewService(d.resolver, d.logger)
			return runService(cmd, d, svc, args)
		},
	}
}
