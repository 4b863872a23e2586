package cli

import (
	"github.com/spf13/cobra"

	"github.com/mailposture/mailposture/internal/detect"
	caasvc "github.com/mailposture/mailposture/internal/services/caa"
	dmarcsvc "github.com/mailposture/mailposture/internal/services/dmarc"
	mxsvc "github.com/mailposture/mailposture/internal/services/mx"
	posturesvc "github.com/mailposture/mailposture/internal/services/posture"
	repsvc "github.com/mailposture/mailposture/internal/services/reputation"
	spfsvc "github.com/mailposture/mailposture/internal/services/spf"
)

func newPostureCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "posture [domain...]",
		Short:   "Run the full posture audit: SPF, DMARC, CAA, MX and reputation",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := detect.DefaultPatternPaths()
			if err != nil {
				return err
			}
			patterns, err := detect.LoadPatterns(paths...)
			if err != nil {
				return err
			}
			release := repsvc.NewReleaseClient(d.client, repsvc.DefaultReleaseBaseURL)
			svc := posturesvc.NewService(d.logger,
				spfsvc.NewService(d.resolver, d.logger),
				dmarcsvc.NewService(d.resolver, d.logger),
				caasvc.NewService(d.resolver, d.logger),
				mxsvc.NewService(d.resolver, d.logger, detect.NewDetector(patterns)),
				repsvc.NewService(d.resolver, d.logger, d.cfg.APIKeys.SpamhausDQS, release),
			)
			return runService(cmd, d, svc, args)
		},
	}
}
