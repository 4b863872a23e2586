package cli

import (
	"github.com/spf13/cobra"

	repsvc "github.com/mailposture/mailposture/internal/services/reputation"
)

func newReputationCmd(d *deps) *cobra.Command {
	var noRelease bool
	cmd := &cobra.Command{
		Use:     "reputation [domain|ip...]",
		Short:   "Check Spamhaus blocklist reputation (ZEN for IPs, DBL for domains)",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var release *repsvc.ReleaseClient
			if !noRelease {
				release = repsvc.NewReleaseClient(d.client, repsvc.DefaultReleaseBaseURL)
			}
			svc := repsvc.NewService(d.resolver, d.logger, d.cfg.APIKeys.SpamhausDQS, release)
			return runService(cmd, d, svc, args)
		},
	}
	cmd.Flags().BoolVar(&noRelease, "no-release", false, "skip removal-date lookups for listed targets")
	return cmd
}
