package caa

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds CAA postures for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders all properties in one table grouped by domain.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 42)
	table.Header([]string{"Domain", "Flag", "Tag", "Value", "Impact"})
	var rows [][]string
	for _, r := range m.Results {
		rows = append(rows, r.tableRows()...)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
