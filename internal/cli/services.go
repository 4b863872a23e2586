package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type serviceEntry struct {
	Name    string `json:"name"`
	Group   string `json:"group"`
	Targets string `json:"targets"`
}

// allServices returns a fixed-order list of every audit and aggregate
// command with the target kind it accepts.
func allServices() []serviceEntry {
	return []serviceEntry{
		{"caa", "records", "domain"},
		{"dkim", "records", "domain"},
		{"dmarc", "records", "domain"},
		{"mx", "records", "domain"},
		{"ptr", "records", "ip"},
		{"spf", "records", "domain"},
		{"geo", "enrichment", "ip"},
		{"rdap", "enrichment", "domain"},
		{"reputation", "enrichment", "domain|ip"},
		{"posture", "aggregate", "domain"},
	}
}

func newServicesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "services",
		Short:   "List all audit commands and the target kinds they accept",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := allServices()
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			for _, e := range entries {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", e.Group, e.Name, e.Targets); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
