package dkim

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds DKIM key results for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders one row per audited domain/selector pair.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 40, 48)
	table.Header([]string{"Domain", "Selector", "Status", "Key Type", "Record"})
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, r.tableRow())
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
