package caa

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
)

// Record is one parsed CAA property.
type Record struct {
	Flag        int    `json:"flag"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
	Critical    bool   `json:"critical"`
	Description string `json:"description"`
}

// Result holds the CAA issuance posture for a single domain.
type Result struct {
	Input   string                `json:"input"`
	Status  services.RecordStatus `json:"status"`
	Open    bool                  `json:"open"`
	Records []Record              `json:"records,omitempty"`
}

// IsEmpty reports whether the result is unpopulated (no input was set).
func (r *Result) IsEmpty() bool {
	return r.Input == ""
}

// WriteText renders each property on its own labeled line, or the open
// posture when no records exist.
func (r *Result) WriteText(w io.Writer) error {
	if r.Open {
		_, err := fmt.Fprintf(w, "%s\tcaa\topen\t%s\n", r.Input, OpenPosture)
		return err
	}
	for _, rec := range r.Records {
		crit := ""
		if rec.Critical {
			crit = "\tcritical"
		}
		if _, err := fmt.Fprintf(w, "%s\tcaa\t%d %s %q%s\t%s\n", r.Input, rec.Flag, rec.Tag, rec.Value, crit, rec.Description); err != nil {
			return err
		}
	}
	return nil
}

// tableRows returns one row per property, repeating the input so the
// hierarchical merge groups them under the domain.
func (r *Result) tableRows() [][]string {
	if r.Open {
		return [][]string{{r.Input, "-", "-", "-", OpenPosture}}
	}
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{r.Input, strconv.Itoa(rec.Flag), rec.Tag, rec.Value, rec.Description})
	}
	return rows
}

// WriteTable renders the properties grouped by domain.
func (r *Result) WriteTable(w io.Writer) error {
	table := output.NewGroupedWrappingTable(w, 30, 42)
	table.Header([]string{"Domain", "Flag", "Tag", "Value", "Impact"})
	if err := table.Bulk(r.tableRows()); err != nil {
		return err
	}
	return table.Render()
}

// WritePlain renders one rdata-shaped line per record.
func (r *Result) WritePlain(w io.Writer) error {
	if r.Open {
		_, err := fmt.Fprintln(w, "open")
		return err
	}
	for _, rec := range r.Records {
		if _, err := fmt.Fprintf(w, "%d %s %q\n", rec.Flag, rec.Tag, rec.Value); err != nil {
			return err
		}
	}
	return nil
}
