package cli

import (
	"github.com/spf13/cobra"

	geosvc "github.com/mailposture/mailposture/internal/services/geo"
)

func newGeoCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "geo [ip...]",
		Short:   "Geolocate an IP address (local MaxMind DB or HTTP provider)",
		GroupID: "audit",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := geosvc.NewService(d.client, d.logger, d.cfg.Global.GeoProviderURL, d.cfg.Global.GeoDBPath)
			if err != nil {
				return err
			}
			defer svc.Close()
			return runService(cmd, d, svc, args)
		},
	}
}
