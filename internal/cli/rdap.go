package cli

import (
	"github.com/spf13/cobra"

	rdapsvc "github.com/mailposture/mailposture/internal/services/rdap"
)

func newRDAPCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "rdap [domain...]",
		Short:   "Fetch domain registration data (registrar, age, expiry)",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rdapsvc.NewService(d.client, d.logger, rdapsvc.DefaultBaseURL)
			return runService(cmd, d, svc, args)
		},
	}
}
