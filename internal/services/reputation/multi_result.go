package reputation

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds blocklist verdicts for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders all listings in one table grouped by target.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 50)
	table.Header([]string{"Target", "Zone", "Dataset", "Reason", "Risk"})
	var rows [][]string
	for _, r := range m.Results {
		rows = append(rows, r.tableRows()...)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
