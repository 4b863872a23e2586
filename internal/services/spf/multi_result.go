package spf

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds parsed SPF policies for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders all policies in a single combined table.
// Columns: Domain / Status / Lookups / All / Record.
func (m *MultiResult) WriteTable(w io.Writer) error {
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, r.tableRow())
	}
	table := output.NewWrappingTable(w, 30, 46)
	table.Header([]string{"Domain", "Status", "Lookups", "All", "Record"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
