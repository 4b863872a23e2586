package mx

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds mail-exchanger configurations for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders all exchangers in one table grouped by domain.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 38)
	table.Header([]string{"Domain", "Priority", "Exchange", "Provider"})
	var rows [][]string
	for _, r := range m.Results {
		rows = append(rows, r.tableRows()...)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
