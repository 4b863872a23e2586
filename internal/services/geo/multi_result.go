package geo

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds geolocation results for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders one row per audited address.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 42)
	table.Header([]string{"Address", "Location", "Org", "ASN", "Source"})
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, r.tableRow())
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
