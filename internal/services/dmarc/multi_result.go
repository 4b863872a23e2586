package dmarc

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds parsed DMARC policies for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders one row per audited domain.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 52)
	table.Header([]string{"Domain", "Status", "Policy", "ADKIM", "ASPF", "Record"})
	rows := make([][]string, 0, len(m.Results))
	for i := range m.Results {
		rows = append(rows, m.Results[i].tableRow())
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
