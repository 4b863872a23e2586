package rdap

import (
	"io"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// MultiResult holds registration data for multiple inputs.
type MultiResult struct {
	services.MultiResultBase[Result, *Result]
}

// WriteTable renders one row per audited domain.
func (m *MultiResult) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 30, 52)
	table.Header([]string{"Domain", "Registrar", "Registered", "Age", "Expires"})
	rows := make([][]string, 0, len(m.Results))
	for _, r := range m.Results {
		rows = append(rows, r.tableRow())
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
