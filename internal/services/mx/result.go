package mx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Record is one parsed mail exchanger.
type Record struct {
	Priority int    `json:"priority"`
	Exchange string `json:"exchange"`
	Provider string `json:"provider"`
}

// Result holds the mail-exchanger configuration for a single domain.
type Result struct {
	Input   string                `json:"input"`
	Status  services.RecordStatus `json:"status"`
	NoMail  bool                  `json:"no_mail"`
	Records []Record              `json:"records,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// WriteText renders each exchanger on its own labeled line, priority order.
func (r *Result) WriteText(w io.Writer) error {
	if r.NoMail {
		_, err := fmt.Fprintf(w, "%s\tmx\tnone\tdomain is not configured to receive mail\n", r.Input)
		return err
	}
	for _, rec := range r.Records {
		if _, err := fmt.Fprintf(w, "%s\tmx\t%d %s\t%s\n", r.Input, rec.Priority, rec.Exchange, rec.Provider); err != nil {
			return err
		}
	}
	return nil
}

// tableRows returns one row per exchanger, repeating the input so the
// hierarchical merge groups them under the domain.
func (r *Result) tableRows() [][]string {
	if r.NoMail {
		return [][]string{{r.Input, "-", "-", "does not receive mail"}}
	}
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{r.Input, strconv.Itoa(rec.Priority), rec.Exchange, rec.Provider})
	}
	return rows
}

// WriteTable renders the exchangers grouped by domain.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 38)
	table.Header([]string{"Domain", "Priority", "Exchange", "Provider"})
	if err := table.Bulk(r.tableRows()); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders one "priority exchange" line per record.
func (r *Result) WritePlain(w io.Writer) error {
	if r.NoMail {
		_, err := fmt.Fprintln(w, "none")
		return err
	}
	for _, rec := range r.Records {
		if _, err := fmt.Fprintf(w, "%d %s\n", rec.Priority, rec.Exchange); err != nil {
			return err
		}
	}
	return nil
}
