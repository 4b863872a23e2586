package cli

import (
	"github.com/spf13/cobra"

	"github.com/mailposture/mailposture/internal/detect"
	mxsvc "github.com/mailposture/mailposture/internal/services/mx"
)

func newMXCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "mx [domain...]",
		Short:   "Audit MX records and identify the email provider",
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
			svc := mxsvc.NewService(d.resolver, d.logger, detect.NewDetector(patterns))
			return runService(cmd, d, svc, args)
		},
	}
}
